package localjwt

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-security"
)

// ProviderName is the scheme this provider registers under.
const ProviderName = "jwt"

const providerVersion = "1.0.0"

// Provider bundles the password/token Manager, the default Authorizer,
// and an HMAC token service behind the "jwt" scheme.
type Provider struct {
	mu         sync.RWMutex
	config     Config
	store      PrincipalStore
	manager    *Manager
	authorizer *security.Authorizer
	tokens     *security.TokenServiceImpl
	logger     security.Logger
	available  bool
}

// Verify interface compliance
var _ security.SecurityProvider = (*Provider)(nil)

// New creates the provider and builds its services from the config.
func New(store PrincipalStore, config Config, logger security.Logger) (*Provider, error) {
	p := &Provider{
		store:      store,
		authorizer: security.NewAuthorizer(),
		logger:     logger,
	}
	if err := p.configure(config); err != nil {
		return nil, err
	}
	return p, nil
}

// configure validates the config and rebuilds the token service and
// manager. Callers hold no lock; configure takes it.
func (p *Provider) configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	signer, err := security.NewHMACSigner(config.Algorithm, []byte(config.SigningKey))
	if err != nil {
		return err
	}

	tokens := security.NewTokenService(
		signer,
		config.TokenExpiration,
		config.Issuer,
		jwt.ClaimStrings(config.Audience),
		p.logger,
	)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.config = config
	p.tokens = tokens
	p.manager = NewManager(p.store, tokens, config.TokenExpiration, p.logger)
	p.available = p.store != nil
	return nil
}

// Name satisfies the SecurityProvider interface.
func (p *Provider) Name() string {
	return ProviderName
}

// Version satisfies the SecurityProvider interface.
func (p *Provider) Version() string {
	return providerVersion
}

// Description satisfies the SecurityProvider interface.
func (p *Provider) Description() string {
	return "password and HMAC-signed token authentication against a principal store"
}

// IsAvailable reports whether the provider is configured and has a store.
func (p *Provider) IsAvailable() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.available
}

// Initialize applies registry-supplied configuration on top of the
// current config.
func (p *Provider) Initialize(config security.ProviderConfig) error {
	p.mu.RLock()
	next := p.config.applyProviderConfig(config)
	p.mu.RUnlock()
	return p.configure(next)
}

// Shutdown marks the provider unavailable. It holds no external
// resources.
func (p *Provider) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.available = false
	return nil
}

// AuthenticationManager satisfies the SecurityProvider interface.
func (p *Provider) AuthenticationManager() security.AuthenticationManager {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.manager
}

// AuthorizationChecker satisfies the SecurityProvider interface.
func (p *Provider) AuthorizationChecker() security.AuthorizationChecker {
	return p.authorizer
}

// TokenService satisfies the SecurityProvider interface.
func (p *Provider) TokenService() security.TokenService {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tokens
}
