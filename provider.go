package security

// ProviderConfig is the untyped configuration handed to a provider at
// initialization. Providers decode it into their own typed config.
type ProviderConfig map[string]any

// String reads a string value from the config.
func (c ProviderConfig) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

// Int reads an integer value from the config, accepting the float64 that
// JSON decoding produces.
func (c ProviderConfig) Int(key string) (int, bool) {
	switch v := c[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Strings reads a string slice value from the config, accepting []any.
func (c ProviderConfig) Strings(key string) ([]string, bool) {
	switch v := c[key].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// SecurityProvider bundles an AuthenticationManager, an
// AuthorizationChecker, and a TokenService behind a named scheme.
type SecurityProvider interface {
	// Name is the scheme identifier, e.g. "jwt". Registration is keyed
	// by it.
	Name() string

	// Version identifies the provider implementation.
	Version() string

	// Description is a human-readable summary.
	Description() string

	// IsAvailable reports whether the provider is ready to serve.
	IsAvailable() bool

	// Initialize applies configuration. It may be called again to
	// reconfigure.
	Initialize(config ProviderConfig) error

	// Shutdown releases provider resources.
	Shutdown() error

	AuthenticationManager() AuthenticationManager
	AuthorizationChecker() AuthorizationChecker
	TokenService() TokenService
}

// ProviderSource enumerates SecurityProvider instances for registry
// discovery: a static table, a config-driven list, or a dynamic loader.
type ProviderSource interface {
	Providers() []SecurityProvider
}

// ProviderSourceFunc adapts a function into a ProviderSource.
type ProviderSourceFunc func() []SecurityProvider

// Providers satisfies the ProviderSource interface.
func (f ProviderSourceFunc) Providers() []SecurityProvider {
	if f == nil {
		return nil
	}
	return f()
}

// StaticProviderSource is a fixed registration table.
type StaticProviderSource struct {
	providers []SecurityProvider
}

// Verify interface compliance
var _ ProviderSource = (*StaticProviderSource)(nil)

// NewStaticProviderSource returns a source over the given providers,
// preserving their order.
func NewStaticProviderSource(providers ...SecurityProvider) *StaticProviderSource {
	return &StaticProviderSource{providers: providers}
}

// Providers satisfies the ProviderSource interface.
func (s *StaticProviderSource) Providers() []SecurityProvider {
	out := make([]SecurityProvider, len(s.providers))
	copy(out, s.providers)
	return out
}
