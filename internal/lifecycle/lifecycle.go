// Package lifecycle implements the funding request state machine.
//
// A request starts Pending. From Pending it may move to Reviewed, Approved or
// Rejected; from Reviewed it may only move to Approved, which records that an
// auditor verified the attached proof. Approved and Rejected are terminal.
package lifecycle

import (
	"context"
	"strings"
	"time"

	"chainvora/internal/apperr"
	"chainvora/internal/domain"
	"chainvora/internal/ledger"

	"github.com/shopspring/decimal"
)

// Store is the persistence the lifecycle owns
type Store interface {
	CreateRequest(ctx context.Context, r *domain.FundingRequest, entry *domain.Transaction) error
	GetRequest(ctx context.Context, id uint) (*domain.FundingRequest, error)
	ListRequests(ctx context.Context, status domain.RequestStatus) ([]domain.FundingRequest, error)
	// UpdateStatus applies the change only if the stored status still equals from.
	UpdateStatus(ctx context.Context, id uint, from, to domain.RequestStatus, approvedBy string, entry *domain.Transaction) (bool, error)
	AddRemark(ctx context.Context, remark *domain.Remark) error
	// SetProof applies only while the request is not terminal.
	SetProof(ctx context.Context, id uint, ref string, at time.Time) (bool, error)
}

var transitions = map[domain.RequestStatus][]domain.RequestStatus{
	domain.StatusPending:  {domain.StatusReviewed, domain.StatusApproved, domain.StatusRejected},
	domain.StatusReviewed: {domain.StatusApproved},
}

// CanTransition reports whether a request may move from one status to another
func CanTransition(from, to domain.RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Lifecycle owns funding requests
type Lifecycle struct {
	store Store
	now   func() time.Time
}

// New creates a Lifecycle over store. A nil clock means time.Now.
func New(store Store, now func() time.Time) *Lifecycle {
	if now == nil {
		now = time.Now
	}
	return &Lifecycle{store: store, now: now}
}

// Submit records a new Pending request
func (l *Lifecycle) Submit(ctx context.Context, center string, amount decimal.Decimal, reason string) (*domain.FundingRequest, error) {
	center, reason = strings.TrimSpace(center), strings.TrimSpace(reason)
	if center == "" || reason == "" {
		return nil, apperr.ErrValidation.WithMessage("centerName, amount, and reason are required")
	}
	amount, err := ledger.ValidateAmount(amount)
	if err != nil {
		return nil, err
	}

	now := l.timestamp()
	r := &domain.FundingRequest{
		CenterName: center,
		Amount:     amount,
		Reason:     reason,
		Status:     domain.StatusPending,
		Remarks:    []domain.Remark{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	entry := &domain.Transaction{
		Kind:       domain.KindRequest,
		CenterName: r.CenterName,
		Amount:     r.Amount,
		Purpose:    r.Reason,
		RefTag:     ledger.GenerateReferenceTag(),
		CreatedAt:  r.CreatedAt,
	}
	if err := l.store.CreateRequest(ctx, r, entry); err != nil {
		return nil, err
	}
	return r, nil
}

// SetStatus moves a request to status and logs the change under the status name
func (l *Lifecycle) SetStatus(ctx context.Context, id uint, status domain.RequestStatus, approvedBy string) (*domain.FundingRequest, error) {
	if !status.Valid() {
		return nil, apperr.ErrValidation.WithMessagef("unknown status %q", status)
	}
	r, err := l.store.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(r.Status, status) {
		return nil, apperr.ErrInvalidTransition.WithMessagef("cannot move request %d from %s to %s", id, r.Status, status)
	}

	approvedBy = strings.TrimSpace(approvedBy)
	entry := &domain.Transaction{
		Kind:       string(status),
		CenterName: r.CenterName,
		Amount:     r.Amount,
		Purpose:    r.Reason,
		ApprovedBy: approvedBy,
		RefTag:     ledger.GenerateReferenceTag(),
		CreatedAt:  l.timestamp(),
	}
	ok, err := l.store.UpdateStatus(ctx, id, r.Status, status, approvedBy, entry)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrInvalidTransition.WithMessagef("request %d changed status concurrently", id)
	}
	return l.store.GetRequest(ctx, id)
}

// AddRemark appends a timestamped remark without touching the status
func (l *Lifecycle) AddRemark(ctx context.Context, id uint, text string) (*domain.FundingRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.ErrValidation.WithMessage("remark is required")
	}
	if _, err := l.store.GetRequest(ctx, id); err != nil {
		return nil, err
	}
	if err := l.store.AddRemark(ctx, &domain.Remark{RequestID: id, Text: text, CreatedAt: l.timestamp()}); err != nil {
		return nil, err
	}
	return l.store.GetRequest(ctx, id)
}

// AttachProof stores a proof-of-spend reference on a non-terminal request
func (l *Lifecycle) AttachProof(ctx context.Context, id uint, ref string) (*domain.FundingRequest, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperr.ErrValidation.WithMessage("no file uploaded")
	}
	r, err := l.store.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status.Terminal() {
		return nil, apperr.ErrInvalidTransition.WithMessagef("request %d is %s", id, r.Status)
	}
	ok, err := l.store.SetProof(ctx, id, ref, l.timestamp())
	if err != nil {
		return nil, err
	}
	updated, err := l.store.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok && updated.ProofURL != ref {
		return nil, apperr.ErrInvalidTransition.WithMessagef("request %d is %s", id, updated.Status)
	}
	return updated, nil
}

// Get returns one request
func (l *Lifecycle) Get(ctx context.Context, id uint) (*domain.FundingRequest, error) {
	return l.store.GetRequest(ctx, id)
}

// List returns requests in insertion order, optionally filtered by status
func (l *Lifecycle) List(ctx context.Context, status domain.RequestStatus) ([]domain.FundingRequest, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.ErrValidation.WithMessagef("unknown status %q", status)
	}
	return l.store.ListRequests(ctx, status)
}

func (l *Lifecycle) timestamp() time.Time {
	return l.now().UTC().Truncate(time.Millisecond)
}
