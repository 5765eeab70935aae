package remoteauth

import (
	"context"
	"strings"

	"github.com/goliatone/go-remoteauth/adapters/gologger"
	"github.com/goliatone/go-remoteauth/core"
	"github.com/goliatone/go-remoteauth/transport"
)

type Option func(*setupBuilder)

type setupBuilder struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	metricsRecorder core.MetricsRecorder
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	httpClient      transport.HTTPDoer
	postClient      PostClient
	registry        *transport.Registry
}

func WithLogger(logger core.Logger) Option {
	return func(b *setupBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *setupBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *setupBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *setupBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *setupBuilder) {
		b.optionsResolver = resolver
	}
}

// WithHTTPClient sets the HTTP client handed to transport factories.
func WithHTTPClient(client transport.HTTPDoer) Option {
	return func(b *setupBuilder) {
		b.httpClient = client
	}
}

// WithPostClient bypasses the transport registry.
func WithPostClient(client PostClient) Option {
	return func(b *setupBuilder) {
		b.postClient = client
	}
}

func WithTransportRegistry(registry *transport.Registry) Option {
	return func(b *setupBuilder) {
		b.registry = registry
	}
}

type Dependencies struct {
	Logger          core.Logger
	LoggerProvider  core.LoggerProvider
	MetricsRecorder core.MetricsRecorder
	PostClient      PostClient
}

// Client bundles a ready adapter with the config and dependencies it was
// built from.
type Client struct {
	*core.RemoteAuthentication
	config Config
	deps   Dependencies
}

func (c *Client) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.config
}

func (c *Client) Dependencies() Dependencies {
	if c == nil {
		return Dependencies{}
	}
	return c.deps
}

// Setup resolves config, logger and transport and returns a ready Client.
func Setup(cfg Config, opts ...Option) (*Client, error) {
	builder := setupBuilder{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	resolved, err := core.ResolveConfig(context.Background(), cfg, builder.configProvider, builder.optionsResolver)
	if err != nil {
		return nil, err
	}

	provider, logger := gologger.Named(resolved.ServiceName, builder.loggerProvider, builder.logger)
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = core.NopMetricsRecorder{}
	}

	client := builder.postClient
	if client == nil {
		registry := builder.registry
		if registry == nil {
			registry = transport.NewDefaultRegistry()
		}
		client, err = registry.Build(resolved.Transport, resolved, transport.FactoryDependencies{
			HTTPClient: builder.httpClient,
			Logger:     logger,
			Metrics:    builder.metricsRecorder,
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Info("remote authentication ready",
		"service_name", resolved.ServiceName,
		"transport", strings.ToLower(resolved.Transport),
		"login_url", resolved.LoginURL,
	)

	return &Client{
		RemoteAuthentication: core.NewRemoteAuthentication(resolved.LoginURL, client),
		config:               resolved,
		deps: Dependencies{
			Logger:          logger,
			LoggerProvider:  provider,
			MetricsRecorder: builder.metricsRecorder,
			PostClient:      client,
		},
	}, nil
}
