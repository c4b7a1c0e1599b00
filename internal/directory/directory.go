// Package directory maps wallet addresses to the role they connected with.
// Roles are advisory; the session token issued on connect only records them.
package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"chainvora/internal/apperr"
	"chainvora/internal/domain"
	"chainvora/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	cacheTTL    = time.Minute
	cachePrefix = "identity:wallet:"
)

// Store is the persistence the directory owns
type Store interface {
	FindIdentity(ctx context.Context, wallet string) (*domain.Identity, error)
	SaveIdentity(ctx context.Context, wallet string, role domain.Role) (*domain.Identity, error)
	ListIdentities(ctx context.Context) ([]domain.Identity, error)
}

// Cache is an optional cache for lookups, written through on connect
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Session is the result of a connect: the stored identity and a signed token
type Session struct {
	domain.Identity
	Token string `json:"token,omitempty"`
}

// Directory owns wallet identities
type Directory struct {
	store  Store
	cache  Cache
	secret string
	strict bool
}

// Config holds the optional collaborators and policies of a Directory
type Config struct {
	Cache       Cache  // Nil disables caching
	TokenSecret string // Empty disables session tokens
	StrictRoles bool   // Reject a role change for a registered wallet
}

// New creates a Directory over store
func New(store Store, cfg Config) *Directory {
	return &Directory{store: store, cache: cfg.Cache, secret: cfg.TokenSecret, strict: cfg.StrictRoles}
}

// Connect registers wallet under role. Re-connecting with another role overwrites it
// unless strict roles are enabled, in which case it fails with a conflict.
func (d *Directory) Connect(ctx context.Context, wallet string, role domain.Role) (*Session, error) {
	wallet = strings.TrimSpace(wallet)
	if !role.Valid() {
		return nil, apperr.ErrValidation.WithMessagef("role must be one of Admin, Community, Auditor, Public; got %q", role)
	}
	if wallet == "" {
		if role != domain.RolePublic {
			return nil, apperr.ErrValidation.WithMessage("walletAddress and role required")
		}
		wallet = domain.NoWallet
	}

	if d.strict {
		existing, err := d.store.FindIdentity(ctx, wallet)
		switch {
		case err == nil && existing.Role != role:
			return nil, apperr.ErrConflict.WithMessagef("wallet %s is already connected as %s", wallet, existing.Role)
		case err != nil && !errors.Is(err, apperr.ErrNotFound):
			return nil, err
		}
	}

	ident, err := d.store.SaveIdentity(ctx, wallet, role)
	if err != nil {
		return nil, err
	}
	d.remember(ctx, ident)

	session := &Session{Identity: *ident}
	if d.secret != "" {
		token, err := utils.GenerateJWT(ident.WalletAddress, string(ident.Role), d.secret)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		session.Token = token
	}
	return session, nil
}

// Lookup returns the identity registered for wallet
func (d *Directory) Lookup(ctx context.Context, wallet string) (*domain.Identity, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return nil, apperr.ErrValidation.WithMessage("walletAddress is required")
	}
	if d.cache != nil {
		var cached domain.Identity
		found, err := d.cache.Get(ctx, cachePrefix+wallet, &cached)
		if err == nil && found {
			return &cached, nil
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"wallet": wallet, "error": err.Error()}).Warn("Identity cache read failed")
		}
	}

	ident, err := d.store.FindIdentity(ctx, wallet)
	if err != nil {
		return nil, err
	}
	d.remember(ctx, ident)
	return ident, nil
}

// List returns every registered identity
func (d *Directory) List(ctx context.Context) ([]domain.Identity, error) {
	return d.store.ListIdentities(ctx)
}

// remember caches ident, dropping the cached entry when the write fails so
// a stale role is never served past a connect
func (d *Directory) remember(ctx context.Context, ident *domain.Identity) {
	if d.cache == nil {
		return
	}
	key := cachePrefix + ident.WalletAddress
	err := d.cache.Set(ctx, key, ident, cacheTTL)
	if err == nil {
		return
	}
	logrus.WithFields(logrus.Fields{"wallet": ident.WalletAddress, "error": err.Error()}).Warn("Identity cache write failed")
	if err := d.cache.Delete(ctx, key); err != nil {
		logrus.WithFields(logrus.Fields{"wallet": ident.WalletAddress, "error": err.Error()}).Warn("Identity cache invalidation failed")
	}
}
