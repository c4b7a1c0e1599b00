package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_AmountsAreNumbers(t *testing.T) {
	s := Summary{
		TotalPool:        decimal.NewFromInt(10000),
		TotalAllocated:   decimal.RequireFromString("2500.50"),
		AvailableBalance: decimal.RequireFromString("7499.50"),
	}
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalPool":10000,"totalAllocated":2500.5,"availableBalance":7499.5}`, string(raw))

	var back Summary
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.TotalAllocated.Equal(s.TotalAllocated))
}

func TestAllocation_AmountIsNumber(t *testing.T) {
	raw, err := json.Marshal(Allocation{CenterName: "CenterA", Amount: decimal.RequireFromString("0.10")})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 0.1, out["amount"])
}
