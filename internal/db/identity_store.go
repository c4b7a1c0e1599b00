package db

import (
	"context"
	stderrors "errors"

	"chainvora/internal/apperr"
	"chainvora/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IdentityStore persists wallet to role mappings
type IdentityStore struct {
	db *gorm.DB
}

// FindIdentity returns the identity for a wallet address
func (s *IdentityStore) FindIdentity(ctx context.Context, wallet string) (*domain.Identity, error) {
	var ident domain.Identity
	err := s.db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&ident).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound.WithMessagef("wallet %s is not registered", wallet)
	}
	if err != nil {
		return nil, apperr.Storage(errors.Wrap(err, "find identity"))
	}
	return &ident, nil
}

// SaveIdentity creates the identity or overwrites its role. Concurrent first
// connects of one wallet resolve to a single row through the unique index.
func (s *IdentityStore) SaveIdentity(ctx context.Context, wallet string, role domain.Role) (*domain.Identity, error) {
	var ident domain.Identity
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := domain.Identity{WalletAddress: wallet, Role: role}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}), // Keep id and created_at
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("wallet_address = ?", wallet).First(&ident).Error // Upsert may not report the existing id
	})
	if err != nil {
		return nil, apperr.Storage(errors.Wrap(err, "save identity"))
	}
	return &ident, nil
}

// ListIdentities returns every registered identity
func (s *IdentityStore) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	out := []domain.Identity{}
	err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, apperr.Storage(errors.Wrap(err, "list identities"))
}
