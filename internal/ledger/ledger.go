// Package ledger records money entering the pool and money earmarked for
// centers, and answers aggregate queries over both.
package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"chainvora/internal/apperr"
	"chainvora/internal/domain"

	"github.com/shopspring/decimal"
)

// Store is the persistence the ledger owns. Create methods must save the record
// and its log entry atomically.
type Store interface {
	CreateContribution(ctx context.Context, c *domain.PoolContribution, entry *domain.Transaction) error
	CreateAllocation(ctx context.Context, a *domain.Allocation, entry *domain.Transaction) error
	SumContributions(ctx context.Context) (decimal.Decimal, error)
	SumAllocations(ctx context.Context) (decimal.Decimal, error)
	ListContributions(ctx context.Context) ([]domain.PoolContribution, error)
	ListAllocations(ctx context.Context) ([]domain.Allocation, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ChainEntries(ctx context.Context) ([]domain.Transaction, error)
}

// Ledger owns pool contributions, allocations and the transaction log
type Ledger struct {
	store          Store
	now            func() time.Time
	enforceBalance bool
}

// Option configures a Ledger
type Option func(*Ledger)

// WithClock sets the timestamp source
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithBalanceEnforcement rejects allocations larger than the available balance
func WithBalanceEnforcement(enforce bool) Option {
	return func(l *Ledger) { l.enforceBalance = enforce }
}

// New creates a Ledger over store
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddPoolContribution records money entering the pool
func (l *Ledger) AddPoolContribution(ctx context.Context, source string, amount decimal.Decimal, purpose, notes string) (*domain.PoolContribution, error) {
	source, purpose = strings.TrimSpace(source), strings.TrimSpace(purpose)
	if source == "" || purpose == "" {
		return nil, apperr.ErrValidation.WithMessage("source, amount, and purpose are required")
	}
	amount, err := ValidateAmount(amount)
	if err != nil {
		return nil, err
	}

	c := &domain.PoolContribution{
		Source:    source,
		Amount:    amount,
		Purpose:   purpose,
		Notes:     strings.TrimSpace(notes),
		RefTag:    GenerateReferenceTag(),
		CreatedAt: l.timestamp(),
	}
	entry := &domain.Transaction{
		Kind:      domain.KindAddFund,
		Source:    c.Source,
		Amount:    c.Amount,
		Purpose:   c.Purpose,
		Notes:     c.Notes,
		RefTag:    c.RefTag,
		CreatedAt: c.CreatedAt,
	}
	if err := l.store.CreateContribution(ctx, c, entry); err != nil {
		return nil, err
	}
	return c, nil
}

// Allocate earmarks money from the pool for a center
func (l *Ledger) Allocate(ctx context.Context, center string, amount decimal.Decimal, purpose, wallet, approvedBy string) (*domain.Allocation, error) {
	center, purpose = strings.TrimSpace(center), strings.TrimSpace(purpose)
	if center == "" || purpose == "" {
		return nil, apperr.ErrValidation.WithMessage("centerName, amount, and purpose are required")
	}
	amount, err := ValidateAmount(amount)
	if err != nil {
		return nil, err
	}

	if l.enforceBalance {
		// Concurrent allocations may both pass this check.
		summary, err := l.Summary(ctx)
		if err != nil {
			return nil, err
		}
		if amount.GreaterThan(summary.AvailableBalance) {
			return nil, apperr.ErrInsufficientFunds.WithMessagef("allocation of %s exceeds available balance %s", amount, summary.AvailableBalance)
		}
	}

	a := &domain.Allocation{
		CenterName:    center,
		WalletAddress: strings.TrimSpace(wallet),
		Amount:        amount,
		Purpose:       purpose,
		ApprovedBy:    strings.TrimSpace(approvedBy),
		RefTag:        GenerateReferenceTag(),
		CreatedAt:     l.timestamp(),
	}
	entry := &domain.Transaction{
		Kind:          domain.KindAllocateFund,
		CenterName:    a.CenterName,
		WalletAddress: a.WalletAddress,
		Amount:        a.Amount,
		Purpose:       a.Purpose,
		ApprovedBy:    a.ApprovedBy,
		RefTag:        a.RefTag,
		CreatedAt:     a.CreatedAt,
	}
	if err := l.store.CreateAllocation(ctx, a, entry); err != nil {
		return nil, err
	}
	return a, nil
}

// Summary recomputes pool totals from the stored records on every call
func (l *Ledger) Summary(ctx context.Context) (domain.Summary, error) {
	pool, err := l.store.SumContributions(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	allocated, err := l.store.SumAllocations(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{
		TotalPool:        pool,
		TotalAllocated:   allocated,
		AvailableBalance: pool.Sub(allocated),
	}, nil
}

// ListContributions returns contributions newest first
func (l *Ledger) ListContributions(ctx context.Context) ([]domain.PoolContribution, error) {
	return l.store.ListContributions(ctx)
}

// ListAllocations returns allocations newest first
func (l *Ledger) ListAllocations(ctx context.Context) ([]domain.Allocation, error) {
	return l.store.ListAllocations(ctx)
}

// ListTransactions returns the transaction log newest first
func (l *Ledger) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return l.store.ListTransactions(ctx)
}

// VerifyChain walks the transaction log and reports the first broken link
func (l *Ledger) VerifyChain(ctx context.Context) (domain.ChainReport, error) {
	entries, err := l.store.ChainEntries(ctx)
	if err != nil {
		return domain.ChainReport{}, err
	}
	return domain.VerifyChain(entries), nil
}

func (l *Ledger) timestamp() time.Time {
	return l.now().UTC().Truncate(time.Millisecond)
}

// MaxAmount is the largest amount a DECIMAL(20,2) column holds
var MaxAmount = decimal.RequireFromString("999999999999999999.99")

// ValidateAmount rejects non-positive or oversized amounts and rounds to cents
func ValidateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperr.ErrValidation.WithMessage("amount must be greater than zero")
	}
	rounded := amount.Round(2)
	if !rounded.IsPositive() {
		return decimal.Zero, apperr.ErrValidation.WithMessage("amount must be at least 0.01")
	}
	if rounded.GreaterThan(MaxAmount) {
		return decimal.Zero, apperr.ErrValidation.WithMessagef("amount must not exceed %s", MaxAmount)
	}
	return rounded, nil
}

// GenerateReferenceTag returns a display-only tag such as "0x1a2b3c4d".
// It comes from a non-cryptographic source and may collide.
func GenerateReferenceTag() string {
	return fmt.Sprintf("0x%08x", rand.Uint32())
}
