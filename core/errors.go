package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	AuthErrorInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthErrorUnexpected         = "AUTH_UNEXPECTED_ERROR"
	AuthErrorBadInput           = "AUTH_BAD_INPUT"
	AuthErrorInternal           = "AUTH_INTERNAL_ERROR"
)

const (
	InvalidCredentialsMessage = "Invalid credentials"
	UnexpectedErrorMessage    = "Something went wrong. Please try again soon."
)

// NewInvalidCredentialsError reports that the remote endpoint rejected the
// credentials.
func NewInvalidCredentialsError() *goerrors.Error {
	return goerrors.New(InvalidCredentialsMessage, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(AuthErrorInvalidCredentials)
}

// NewUnexpectedError reports any remote outcome other than success or
// rejected credentials.
func NewUnexpectedError() *goerrors.Error {
	return goerrors.New(UnexpectedErrorMessage, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(AuthErrorUnexpected)
}

func IsInvalidCredentials(err error) bool {
	return hasTextCode(err, AuthErrorInvalidCredentials)
}

func IsUnexpected(err error) bool {
	return hasTextCode(err, AuthErrorUnexpected)
}

func hasTextCode(err error, textCode string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return strings.TrimSpace(richErr.TextCode) == textCode
}

func dependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(AuthErrorInternal)
}

func configError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(AuthErrorBadInput)
}
