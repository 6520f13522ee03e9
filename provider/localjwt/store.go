package localjwt

import (
	"context"
	"sync"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-security"
	"golang.org/x/crypto/bcrypt"
)

// PrincipalStore resolves and verifies principals. Concrete stores live
// outside this package; MemoryStore covers tests and small deployments.
type PrincipalStore interface {
	// VerifyPrincipal checks the password for a username and returns the
	// principal on success.
	VerifyPrincipal(ctx context.Context, username, password string) (*security.AuthPrincipal, error)

	// FindPrincipal resolves a principal by username without verifying
	// credentials.
	FindPrincipal(ctx context.Context, username string) (*security.AuthPrincipal, error)
}

type memoryEntry struct {
	principal    *security.AuthPrincipal
	passwordHash string
}

// MemoryStore is an in-memory PrincipalStore with bcrypt-hashed passwords.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	cost    int
}

// Verify interface compliance
var _ PrincipalStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store using the default bcrypt cost.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]memoryEntry{},
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *MemoryStore) WithCost(cost int) *MemoryStore {
	s.cost = cost
	return s
}

// Add hashes the password and stores the principal keyed by username.
func (s *MemoryStore) Add(p *security.AuthPrincipal, password string) error {
	if p == nil {
		return security.ErrPrincipalInvalid
	}
	if password == "" {
		return errors.New("password must not be empty", errors.CategoryBadInput).
			WithTextCode(security.TextCodeValidationMissingField)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to hash password").
			WithTextCode(security.TextCodePrincipalCreateFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[p.Username()] = memoryEntry{principal: p, passwordHash: string(hash)}
	return nil
}

// VerifyPrincipal satisfies the PrincipalStore interface.
func (s *MemoryStore) VerifyPrincipal(ctx context.Context, username, password string) (*security.AuthPrincipal, error) {
	s.mu.RLock()
	entry, ok := s.entries[username]
	s.mu.RUnlock()

	if !ok {
		return nil, security.ErrPrincipalNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(entry.passwordHash), []byte(password)); err != nil {
		return nil, security.ErrInvalidCredentials
	}
	return entry.principal, nil
}

// FindPrincipal satisfies the PrincipalStore interface.
func (s *MemoryStore) FindPrincipal(ctx context.Context, username string) (*security.AuthPrincipal, error) {
	s.mu.RLock()
	entry, ok := s.entries[username]
	s.mu.RUnlock()

	if !ok {
		return nil, security.ErrPrincipalNotFound
	}
	return entry.principal, nil
}
