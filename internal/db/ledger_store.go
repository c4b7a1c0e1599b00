package db

import (
	"context"

	"chainvora/internal/apperr"
	"chainvora/internal/domain"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerStore persists pool contributions, allocations and the transaction log
type LedgerStore struct {
	db    *gorm.DB
	chain *chainWriter
}

// CreateContribution saves the contribution and its log entry atomically
func (s *LedgerStore) CreateContribution(ctx context.Context, c *domain.PoolContribution, entry *domain.Transaction) error {
	err := s.chain.write(ctx, entry, func(tx *gorm.DB) error {
		return tx.Create(c).Error
	})
	return apperr.Storage(errors.Wrap(err, "create contribution"))
}

// CreateAllocation saves the allocation and its log entry atomically
func (s *LedgerStore) CreateAllocation(ctx context.Context, a *domain.Allocation, entry *domain.Transaction) error {
	err := s.chain.write(ctx, entry, func(tx *gorm.DB) error {
		return tx.Create(a).Error
	})
	return apperr.Storage(errors.Wrap(err, "create allocation"))
}

// SumContributions returns the total of all contributions, zero when empty
func (s *LedgerStore) SumContributions(ctx context.Context) (decimal.Decimal, error) {
	return s.sum(ctx, &domain.PoolContribution{})
}

// SumAllocations returns the total of all allocations, zero when empty
func (s *LedgerStore) SumAllocations(ctx context.Context) (decimal.Decimal, error) {
	return s.sum(ctx, &domain.Allocation{})
}

func (s *LedgerStore) sum(ctx context.Context, model any) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	row := s.db.WithContext(ctx).Model(model).Select("SUM(amount)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, apperr.Storage(errors.Wrap(err, "sum amounts"))
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	// Amount columns hold cents; some drivers sum through float64.
	return total.Decimal.Round(2), nil
}

// ListContributions returns contributions newest first
func (s *LedgerStore) ListContributions(ctx context.Context) ([]domain.PoolContribution, error) {
	out := []domain.PoolContribution{}
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&out).Error
	return out, apperr.Storage(errors.Wrap(err, "list contributions"))
}

// ListAllocations returns allocations newest first
func (s *LedgerStore) ListAllocations(ctx context.Context) ([]domain.Allocation, error) {
	out := []domain.Allocation{}
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&out).Error
	return out, apperr.Storage(errors.Wrap(err, "list allocations"))
}

// ListTransactions returns the transaction log newest first
func (s *LedgerStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&out).Error
	return out, apperr.Storage(errors.Wrap(err, "list transactions"))
}

// ChainEntries returns the transaction log in insertion order
func (s *LedgerStore) ChainEntries(ctx context.Context) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, apperr.Storage(errors.Wrap(err, "read chain"))
}
