package security

import (
	"sync"

	"github.com/goliatone/go-errors"
)

// ProviderRegistry discovers, initializes, looks up, and shuts down
// SecurityProviders. Initialize and Shutdown are mutually exclusive;
// lookups run concurrently under a read lock.
type ProviderRegistry struct {
	mu          sync.RWMutex
	source      ProviderSource
	providers   map[string]SecurityProvider
	order       []string
	configs     map[string]ProviderConfig
	initialized bool
	logger      Logger
}

// NewProviderRegistry creates a registry that discovers providers from
// the given source.
func NewProviderRegistry(source ProviderSource, logger Logger) *ProviderRegistry {
	if logger == nil {
		logger = defLogger{}
	}
	return &ProviderRegistry{
		source:    source,
		providers: map[string]SecurityProvider{},
		configs:   map[string]ProviderConfig{},
		logger:    logger,
	}
}

// Initialize enumerates the source and registers each provider by name.
// The first registration of a name wins; duplicates and unnamed
// candidates are logged and skipped. A bad candidate never prevents the
// rest from registering.
func (r *ProviderRegistry) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}

	var candidates []SecurityProvider
	if r.source != nil {
		candidates = r.source.Providers()
	}

	for _, p := range candidates {
		if p == nil {
			r.logger.Error("ProviderRegistry discovery skipped nil provider")
			continue
		}
		name := p.Name()
		if name == "" {
			r.logger.Error("ProviderRegistry discovery skipped provider with empty name")
			continue
		}
		if _, exists := r.providers[name]; exists {
			r.logger.Info("ProviderRegistry discovery skipped duplicate provider", "name", name)
			continue
		}
		r.providers[name] = p
		r.order = append(r.order, name)
		r.logger.Debug("ProviderRegistry registered provider", "name", name, "version", p.Version())
	}

	r.initialized = true
	return nil
}

// Provider looks up a registered provider by name.
func (r *ProviderRegistry) Provider(name string) (SecurityProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providerLocked(name)
}

func (r *ProviderRegistry) providerLocked(name string) (SecurityProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, errors.New("security provider not found: "+name, ErrProviderNotFound.Category).
			WithTextCode(ErrProviderNotFound.TextCode)
	}
	return p, nil
}

// availableProviderLocked resolves a provider that is also available.
func (r *ProviderRegistry) availableProviderLocked(name string) (SecurityProvider, error) {
	p, err := r.providerLocked(name)
	if err != nil {
		return nil, err
	}
	if !p.IsAvailable() {
		return nil, errors.New("security provider unavailable: "+name, ErrProviderUnavailable.Category).
			WithTextCode(ErrProviderUnavailable.TextCode)
	}
	return p, nil
}

// DefaultProvider returns the first registered provider reporting itself
// available, in registration order.
func (r *ProviderRegistry) DefaultProvider() (SecurityProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		p := r.providers[name]
		if p.IsAvailable() {
			return p, nil
		}
	}
	return nil, ErrProviderUnavailable
}

// AuthenticationManager resolves the manager of a named, available
// provider.
func (r *ProviderRegistry) AuthenticationManager(providerName string) (AuthenticationManager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, err := r.availableProviderLocked(providerName)
	if err != nil {
		return nil, err
	}
	return p.AuthenticationManager(), nil
}

// AuthorizationChecker resolves the checker of a named, available
// provider.
func (r *ProviderRegistry) AuthorizationChecker(providerName string) (AuthorizationChecker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, err := r.availableProviderLocked(providerName)
	if err != nil {
		return nil, err
	}
	return p.AuthorizationChecker(), nil
}

// TokenService resolves the token service of a named, available provider.
func (r *ProviderRegistry) TokenService(providerName string) (TokenService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, err := r.availableProviderLocked(providerName)
	if err != nil {
		return nil, err
	}
	return p.TokenService(), nil
}

// ProviderNames returns the registered names in registration order.
func (r *ProviderRegistry) ProviderNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ConfigureProvider initializes a named provider with the given
// configuration and records it. Failures are wrapped as provider errors
// and leave registry state untouched.
func (r *ProviderRegistry) ConfigureProvider(name string, config ProviderConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.providerLocked(name)
	if err != nil {
		return err
	}

	if err := p.Initialize(config); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "provider initialization failed: "+name).
			WithTextCode(TextCodeProviderInitFailed)
	}

	r.configs[name] = config
	return nil
}

// ProviderConfigFor returns the configuration last applied to a provider.
func (r *ProviderRegistry) ProviderConfigFor(name string) (ProviderConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.configs[name]
	return c, ok
}

// Shutdown calls Shutdown on every registered provider in registration
// order, logging per-provider failures, then clears all state so the
// registry can be initialized again.
func (r *ProviderRegistry) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		if err := r.providers[name].Shutdown(); err != nil {
			r.logger.Error("ProviderRegistry shutdown failed for provider", "name", name, "error", err)
		}
	}

	r.providers = map[string]SecurityProvider{}
	r.configs = map[string]ProviderConfig{}
	r.order = nil
	r.initialized = false
	return nil
}
