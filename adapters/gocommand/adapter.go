package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	authcommand "github.com/goliatone/go-remoteauth/command"
	"github.com/goliatone/go-remoteauth/core"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterCommand(cmd any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(cmd)
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeCommand[T any](cmd command.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func RegisterAndSubscribe[T any](
	adapter *RegistryAdapter,
	cmd command.Commander[T],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	subscription := SubscribeCommand(cmd, runnerOpts...)
	if err := adapter.RegisterCommand(cmd); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// RegisterAuthenticator wires an AuthenticateCommand for authenticator into
// the registry and the global dispatcher.
func RegisterAuthenticator(
	adapter *RegistryAdapter,
	authenticator core.Authenticator,
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if authenticator == nil {
		return nil, fmt.Errorf("gocommand: authenticator is required")
	}
	return RegisterAndSubscribe[authcommand.AuthenticateMessage](
		adapter,
		authcommand.NewAuthenticateCommand(authenticator),
		runnerOpts...,
	)
}

// Authenticate dispatches an AuthenticateMessage and returns the stored
// account.
func Authenticate(ctx context.Context, credentials core.Credentials) (core.Account, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	msg := authcommand.AuthenticateMessage{Credentials: credentials}
	if err := ValidateMessageContract(msg); err != nil {
		return core.Account{}, err
	}
	collector := command.NewResult[core.Account]()
	ctx = command.ContextWithResult(ctx, collector)
	if err := Dispatch(ctx, msg); err != nil {
		return core.Account{}, err
	}
	account, ok := collector.Load()
	if !ok {
		return core.Account{}, fmt.Errorf("gocommand: authenticate produced no account")
	}
	return account, nil
}
