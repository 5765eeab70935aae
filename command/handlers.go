package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-remoteauth/core"
)

type AuthenticateCommand struct {
	authenticator core.Authenticator
}

func NewAuthenticateCommand(authenticator core.Authenticator) *AuthenticateCommand {
	return &AuthenticateCommand{authenticator: authenticator}
}

// Execute validates the message, authenticates and stores the resulting
// account in the context result collector when one is present.
func (c *AuthenticateCommand) Execute(ctx context.Context, msg AuthenticateMessage) error {
	if c == nil || c.authenticator == nil {
		return commandDependencyError("command: authenticator is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.authenticator.Authenticate(ctx, msg.Credentials)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
