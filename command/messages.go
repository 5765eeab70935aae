package command

import (
	"strings"

	"github.com/goliatone/go-remoteauth/core"
)

const TypeAuthenticate = "remoteauth.command.authenticate"

type AuthenticateMessage struct {
	Credentials core.Credentials
}

func (AuthenticateMessage) Type() string { return TypeAuthenticate }

func (m AuthenticateMessage) Validate() error {
	if strings.TrimSpace(m.Credentials.Email) == "" {
		return commandValidationError("email", "email is required")
	}
	if m.Credentials.Password == "" {
		return commandValidationError("password", "password is required")
	}
	return nil
}
