package ledger_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"chainvora/internal/apperr"
	"chainvora/internal/db/dbtest"
	"chainvora/internal/domain"
	"chainvora/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one second per call
func stepClock() func() time.Time {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newLedger(t *testing.T, opts ...ledger.Option) *ledger.Ledger {
	opts = append([]ledger.Option{ledger.WithClock(stepClock())}, opts...)
	return ledger.New(dbtest.Stores(t).Ledger, opts...)
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSummary_Scenario(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	_, err := l.AddPoolContribution(ctx, "NGO", d(10000), "Education", "")
	require.NoError(t, err)
	s, err := l.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10000", s.TotalPool.String())
	assert.Equal(t, "0", s.TotalAllocated.String())
	assert.Equal(t, "10000", s.AvailableBalance.String())

	_, err = l.Allocate(ctx, "CenterA", d(4000), "Books", "", "")
	require.NoError(t, err)
	s, err = l.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10000", s.TotalPool.String())
	assert.Equal(t, "4000", s.TotalAllocated.String())
	assert.Equal(t, "6000", s.AvailableBalance.String())
}

func TestSummary_EmptyAndIdempotent(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	first, err := l.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, first.TotalPool.IsZero())
	assert.True(t, first.AvailableBalance.IsZero())

	_, err = l.AddPoolContribution(ctx, "Grant", decimal.RequireFromString("1234.56"), "Health", "q1")
	require.NoError(t, err)

	a, err := l.Summary(ctx)
	require.NoError(t, err)
	b, err := l.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, a.TotalPool.Equal(b.TotalPool))
	assert.True(t, a.AvailableBalance.Equal(b.AvailableBalance))
}

func TestSummary_SumsInterleavedWrites(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	contributions := []string{"100.10", "0.25", "999.99"}
	allocations := []string{"50.05", "1000"}
	for i := 0; i < 3; i++ {
		_, err := l.AddPoolContribution(ctx, "Donor", decimal.RequireFromString(contributions[i]), "General", "")
		require.NoError(t, err)
		if i < len(allocations) {
			_, err = l.Allocate(ctx, "Center", decimal.RequireFromString(allocations[i]), "Ops", "", "")
			require.NoError(t, err)
		}
	}

	s, err := l.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, s.TotalPool.Equal(decimal.RequireFromString("1100.34")), s.TotalPool.String())
	assert.True(t, s.TotalAllocated.Equal(decimal.RequireFromString("1050.05")), s.TotalAllocated.String())
	assert.True(t, s.AvailableBalance.Equal(s.TotalPool.Sub(s.TotalAllocated)))
}

func TestAllocate_UnenforcedAllowsNegativeBalance(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	_, err := l.Allocate(ctx, "CenterA", d(300), "Books", "0xC1", "Admin1")
	require.NoError(t, err)

	s, err := l.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "-300", s.AvailableBalance.String())
}

func TestAllocate_EnforcedBalance(t *testing.T) {
	l := newLedger(t, ledger.WithBalanceEnforcement(true))
	ctx := context.Background()

	_, err := l.AddPoolContribution(ctx, "NGO", d(1000), "Education", "")
	require.NoError(t, err)

	_, err = l.Allocate(ctx, "CenterA", d(1000), "Books", "", "")
	require.NoError(t, err)

	_, err = l.Allocate(ctx, "CenterB", d(1), "Books", "", "")
	assert.True(t, errors.Is(err, apperr.ErrInsufficientFunds))

	txs, err := l.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 2, "rejected allocation writes nothing")
}

func TestValidation(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"missing source", func() error { _, err := l.AddPoolContribution(ctx, " ", d(1), "p", ""); return err }},
		{"missing purpose", func() error { _, err := l.AddPoolContribution(ctx, "s", d(1), "", ""); return err }},
		{"zero amount", func() error { _, err := l.AddPoolContribution(ctx, "s", d(0), "p", ""); return err }},
		{"negative amount", func() error { _, err := l.AddPoolContribution(ctx, "s", d(-5), "p", ""); return err }},
		{"sub-cent amount", func() error {
			_, err := l.AddPoolContribution(ctx, "s", decimal.RequireFromString("0.001"), "p", "")
			return err
		}},
		{"amount too large", func() error {
			_, err := l.AddPoolContribution(ctx, "s", decimal.RequireFromString("1e40"), "p", "")
			return err
		}},
		{"allocate too large", func() error {
			_, err := l.Allocate(ctx, "c", decimal.RequireFromString("1000000000000000000"), "p", "", "")
			return err
		}},
		{"missing center", func() error { _, err := l.Allocate(ctx, "", d(1), "p", "", ""); return err }},
		{"allocate zero", func() error { _, err := l.Allocate(ctx, "c", d(0), "p", "", ""); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(tc.call(), apperr.ErrValidation))
		})
	}

	txs, err := l.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestValidateAmount_Bounds(t *testing.T) {
	got, err := ledger.ValidateAmount(ledger.MaxAmount)
	require.NoError(t, err)
	assert.True(t, got.Equal(ledger.MaxAmount))

	// rounds up past the column limit
	_, err = ledger.ValidateAmount(decimal.RequireFromString("999999999999999999.999"))
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	got, err = ledger.ValidateAmount(decimal.RequireFromString("12.345"))
	require.NoError(t, err)
	assert.Equal(t, "12.35", got.StringFixed(2))
}

func TestEveryWriteLogsOnce(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	c, err := l.AddPoolContribution(ctx, "NGO", d(500), "Education", "seed")
	require.NoError(t, err)
	a, err := l.Allocate(ctx, "CenterA", d(200), "Books", "0xC1", "Admin1")
	require.NoError(t, err)

	txs, err := l.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// newest first
	assert.Equal(t, domain.KindAllocateFund, txs[0].Kind)
	assert.Equal(t, a.RefTag, txs[0].RefTag)
	assert.Equal(t, "CenterA", txs[0].CenterName)
	assert.Equal(t, "Admin1", txs[0].ApprovedBy)
	assert.Equal(t, domain.KindAddFund, txs[1].Kind)
	assert.Equal(t, c.RefTag, txs[1].RefTag)
	assert.Equal(t, "seed", txs[1].Notes)

	report, err := l.VerifyChain(ctx)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, 2, report.Entries)
}

func TestListsNewestFirst(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	for _, src := range []string{"first", "second", "third"} {
		_, err := l.AddPoolContribution(ctx, src, d(1), "p", "")
		require.NoError(t, err)
		_, err = l.Allocate(ctx, src, d(1), "p", "", "")
		require.NoError(t, err)
	}

	contributions, err := l.ListContributions(ctx)
	require.NoError(t, err)
	require.Len(t, contributions, 3)
	assert.Equal(t, "third", contributions[0].Source)
	assert.Equal(t, "first", contributions[2].Source)

	allocations, err := l.ListAllocations(ctx)
	require.NoError(t, err)
	require.Len(t, allocations, 3)
	assert.Equal(t, "third", allocations[0].CenterName)
}

func TestGenerateReferenceTag(t *testing.T) {
	pattern := regexp.MustCompile(`^0x[0-9a-f]{8}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, ledger.GenerateReferenceTag())
	}
}
