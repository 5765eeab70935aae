package devkit

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-remoteauth/core"
	"github.com/google/uuid"
)

// MockCredentials returns synthetic credentials unique per call.
func MockCredentials() core.Credentials {
	id := shortID()
	return core.Credentials{
		Email:    fmt.Sprintf("user-%s@example.com", id),
		Password: "pw-" + uuid.NewString(),
	}
}

// MockAccount returns an account with a random access token.
func MockAccount() core.Account {
	return core.Account{AccessToken: "tok-" + uuid.NewString()}
}

// MockURL returns a random absolute https url.
func MockURL() string {
	return fmt.Sprintf("https://%s.example.com/api/login", shortID())
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
