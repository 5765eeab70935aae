package transport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-remoteauth/core"
)

// ClientFactory builds a credentials post client for a resolved config.
type ClientFactory func(cfg core.Config, deps FactoryDependencies) (core.PostClient[core.Credentials, core.Account], error)

type FactoryDependencies struct {
	HTTPClient HTTPDoer
	Logger     core.Logger
	Metrics    core.MetricsRecorder
}

type Registry struct {
	mu        sync.RWMutex
	factories map[string]ClientFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: map[string]ClientFactory{},
	}
}

func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	_ = registry.Register(KindREST, RESTClientFactory)
	return registry
}

func (r *Registry) Register(kind string, factory ClientFactory) error {
	if r == nil {
		return fmt.Errorf("transport: registry is nil")
	}
	kind = normalizeKind(kind)
	if kind == "" {
		return fmt.Errorf("transport: client kind is required")
	}
	if factory == nil {
		return fmt.Errorf("transport: client factory is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("transport: client kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

func (r *Registry) Build(kind string, cfg core.Config, deps FactoryDependencies) (core.PostClient[core.Credentials, core.Account], error) {
	if r == nil {
		return nil, fmt.Errorf("transport: registry is nil")
	}
	kind = normalizeKind(kind)
	if kind == "" {
		return nil, fmt.Errorf("transport: client kind is required")
	}

	r.mu.RLock()
	factory := r.factories[kind]
	r.mu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("transport: client kind %q not registered", kind)
	}
	built, err := factory(cfg, deps)
	if err != nil {
		return nil, err
	}
	if built == nil {
		return nil, fmt.Errorf("transport: factory for %q returned nil client", kind)
	}
	return built, nil
}

func (r *Registry) Kinds() []string {
	if r == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// RESTClientFactory builds a RESTPostClient honoring the config timeout and
// body limit.
func RESTClientFactory(cfg core.Config, deps FactoryDependencies) (core.PostClient[core.Credentials, core.Account], error) {
	httpClient := deps.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultRESTClientTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	client := NewRESTPostClient[core.Credentials, core.Account](httpClient)
	if cfg.MaxResponseBodyBytes > 0 {
		client.MaxResponseBodyBytes = cfg.MaxResponseBodyBytes
	}
	if deps.Logger != nil {
		client.Logger = deps.Logger
	}
	if deps.Metrics != nil {
		client.Metrics = deps.Metrics
	}
	return client, nil
}

func normalizeKind(kind string) string {
	return strings.TrimSpace(strings.ToLower(kind))
}
