package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"chainvora/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

type fakeLedger struct {
	contributions []domain.PoolContribution
	allocations   []domain.Allocation
	err           error
}

func (f *fakeLedger) ListContributions(context.Context) ([]domain.PoolContribution, error) {
	return f.contributions, f.err
}

func (f *fakeLedger) ListAllocations(context.Context) ([]domain.Allocation, error) {
	return f.allocations, nil
}

type fakeRequests []domain.FundingRequest

func (f fakeRequests) List(context.Context, domain.RequestStatus) ([]domain.FundingRequest, error) {
	return f, nil
}

func at(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

func TestTimeline_MergesNewestFirst(t *testing.T) {
	ledger := &fakeLedger{
		contributions: []domain.PoolContribution{{Source: "NGO", Amount: decimal.NewFromInt(1000), Purpose: "Education", RefTag: "0x01", CreatedAt: at(1)}},
		allocations: []domain.Allocation{
			{CenterName: "CenterA", Amount: decimal.NewFromInt(400), Purpose: "Books", ApprovedBy: "Admin1", RefTag: "0x02", CreatedAt: at(3)},
			{CenterName: "CenterB", Amount: decimal.NewFromInt(100), Purpose: "Food", CreatedAt: at(2)},
		},
	}
	requests := fakeRequests{{CenterName: "CenterA", Amount: decimal.NewFromInt(50), Reason: "Repairs", Status: domain.StatusPending, CreatedAt: at(4)}}

	events, err := New(ledger, requests).Timeline(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Equal(t, EventRequest, events[0].Type)
	assert.Equal(t, "Pending", events[0].Status)
	assert.Equal(t, "Approved by Admin1", events[1].Status)
	assert.Equal(t, "0x02", events[1].RefTag)
	assert.Equal(t, "Approved by Admin", events[2].Status)
	assert.Equal(t, EventContribution, events[3].Type)
	assert.Equal(t, "NGO", events[3].Source)
}

func TestTimeline_Empty(t *testing.T) {
	events, err := New(&fakeLedger{}, fakeRequests{}).Timeline(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestTimeline_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(&fakeLedger{err: boom}, fakeRequests{}).Timeline(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestStatusFeed(t *testing.T) {
	requests := fakeRequests{
		{ID: 1, CenterName: "A", Status: domain.StatusApproved, CreatedAt: at(1), Remarks: []domain.Remark{{Text: "ok"}}},
		{ID: 2, CenterName: "B", Status: domain.StatusPending, CreatedAt: at(2)},
	}
	feed, err := New(&fakeLedger{}, requests).StatusFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, uint(2), feed[0].ID)
	assert.NotNil(t, feed[0].Remarks)
	assert.Equal(t, "ok", feed[1].Remarks[0].Text)
}
