// Package timeline builds read-only views that merge ledger records and requests.
package timeline

import (
	"context"
	"sort"
	"time"

	"chainvora/internal/domain"

	"github.com/shopspring/decimal"
)

// Event kinds shown on the timeline
const (
	EventContribution = "Contribution"
	EventApproved     = "Approved"
	EventRequest      = "Request"
)

// Ledger is the ledger read surface the timeline needs
type Ledger interface {
	ListContributions(ctx context.Context) ([]domain.PoolContribution, error)
	ListAllocations(ctx context.Context) ([]domain.Allocation, error)
}

// Requests is the request read surface the timeline needs
type Requests interface {
	List(ctx context.Context, status domain.RequestStatus) ([]domain.FundingRequest, error)
}

// Event is one row of the fund timeline
type Event struct {
	Type        string          `json:"type"`
	CenterName  string          `json:"centerName,omitempty"`
	Source      string          `json:"source,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Date        time.Time       `json:"date"`
	RefTag      string          `json:"txHash,omitempty"`
}

// StatusEntry is one row of the public status feed
type StatusEntry struct {
	ID         uint                 `json:"id"`
	CenterName string               `json:"centerName"`
	Status     domain.RequestStatus `json:"status"`
	Date       time.Time            `json:"date"`
	Remarks    []domain.Remark      `json:"remarks"`
}

// Service assembles timeline views on demand
type Service struct {
	ledger   Ledger
	requests Requests
}

// New creates a timeline Service
func New(ledger Ledger, requests Requests) *Service {
	return &Service{ledger: ledger, requests: requests}
}

// Timeline merges contributions, allocations and requests newest first
func (s *Service) Timeline(ctx context.Context) ([]Event, error) {
	contributions, err := s.ledger.ListContributions(ctx)
	if err != nil {
		return nil, err
	}
	allocations, err := s.ledger.ListAllocations(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.List(ctx, "")
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(contributions)+len(allocations)+len(requests))
	for _, c := range contributions {
		events = append(events, Event{
			Type:        EventContribution,
			Source:      c.Source,
			Amount:      c.Amount,
			Description: c.Purpose,
			Status:      "Received from " + c.Source,
			Date:        c.CreatedAt,
			RefTag:      c.RefTag,
		})
	}
	for _, a := range allocations {
		approver := a.ApprovedBy
		if approver == "" {
			approver = "Admin"
		}
		events = append(events, Event{
			Type:        EventApproved,
			CenterName:  a.CenterName,
			Amount:      a.Amount,
			Description: a.Purpose,
			Status:      "Approved by " + approver,
			Date:        a.CreatedAt,
			RefTag:      a.RefTag,
		})
	}
	for _, r := range requests {
		events = append(events, Event{
			Type:        EventRequest,
			CenterName:  r.CenterName,
			Amount:      r.Amount,
			Description: r.Reason,
			Status:      string(r.Status),
			Date:        r.CreatedAt,
		})
	}

	// stable keeps contributions before allocations before requests on equal dates
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events, nil
}

// StatusFeed lists requests newest first with their remarks
func (s *Service) StatusFeed(ctx context.Context) ([]StatusEntry, error) {
	requests, err := s.requests.List(ctx, "")
	if err != nil {
		return nil, err
	}
	feed := make([]StatusEntry, 0, len(requests))
	for i := len(requests) - 1; i >= 0; i-- {
		r := requests[i]
		remarks := r.Remarks
		if remarks == nil {
			remarks = []domain.Remark{}
		}
		feed = append(feed, StatusEntry{ID: r.ID, CenterName: r.CenterName, Status: r.Status, Date: r.CreatedAt, Remarks: remarks})
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	return feed, nil
}
