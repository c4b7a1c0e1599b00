package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func chainOf(n int) []Transaction {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var out []Transaction
	prev := ""
	for i := 0; i < n; i++ {
		e := Transaction{
			ID:        uint(i + 1),
			Kind:      KindAddFund,
			Source:    "NGO",
			Amount:    decimal.NewFromInt(int64(100 * (i + 1))),
			Purpose:   "Education",
			PrevHash:  prev,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		e.Hash = e.ComputeHash()
		prev = e.Hash
		out = append(out, e)
	}
	return out
}

func TestComputeHash_Deterministic(t *testing.T) {
	e := chainOf(1)[0]
	assert.Len(t, e.Hash, 64)
	assert.Equal(t, e.Hash, e.ComputeHash())

	e.Amount = decimal.NewFromInt(101)
	assert.NotEqual(t, e.Hash, e.ComputeHash())
}

func TestComputeHash_IgnoresSubMillisecond(t *testing.T) {
	e := chainOf(1)[0]
	e.CreatedAt = e.CreatedAt.Add(300 * time.Microsecond)
	assert.Equal(t, e.Hash, e.ComputeHash())
}

func TestVerifyChain(t *testing.T) {
	assert.Equal(t, ChainReport{Valid: true}, VerifyChain(nil))

	entries := chainOf(4)
	assert.Equal(t, ChainReport{Valid: true, Entries: 4}, VerifyChain(entries))

	entries[2].Purpose = "Tampered"
	report := VerifyChain(entries)
	assert.False(t, report.Valid)
	assert.Equal(t, uint(3), report.BrokenAt)
}

func TestStatusAndRole(t *testing.T) {
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusReviewed.Terminal())
	assert.False(t, RequestStatus("Closed").Valid())

	assert.True(t, RoleAuditor.Valid())
	assert.False(t, Role("Owner").Valid())
}
