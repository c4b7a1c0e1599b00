// Package progress tracks center milestones and free-text status updates.
package progress

import (
	"context"
	"strings"
	"time"

	"chainvora/internal/apperr"
	"chainvora/internal/domain"
)

// Store is the persistence progress tracking owns
type Store interface {
	CreateMilestone(ctx context.Context, m *domain.Milestone) error
	CompleteMilestone(ctx context.Context, id uint, at time.Time) (*domain.Milestone, error)
	ListMilestones(ctx context.Context, center string) ([]domain.Milestone, error)
	CreateStatusUpdate(ctx context.Context, u *domain.StatusUpdate) error
	ListStatusUpdates(ctx context.Context, center string) ([]domain.StatusUpdate, error)
}

// Tracker records center progress
type Tracker struct {
	store Store
	now   func() time.Time
}

// New creates a Tracker. A nil clock means time.Now.
func New(store Store, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: store, now: now}
}

func (t *Tracker) AddMilestone(ctx context.Context, center, title string) (*domain.Milestone, error) {
	center, title = strings.TrimSpace(center), strings.TrimSpace(title)
	if center == "" || title == "" {
		return nil, apperr.ErrValidation.WithMessage("centerName and milestone are required")
	}
	m := &domain.Milestone{CenterName: center, Title: title, CreatedAt: t.timestamp()}
	if err := t.store.CreateMilestone(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// CompleteMilestone marks a milestone done; completing it twice keeps the first time
func (t *Tracker) CompleteMilestone(ctx context.Context, id uint) (*domain.Milestone, error) {
	return t.store.CompleteMilestone(ctx, id, t.timestamp())
}

func (t *Tracker) ListMilestones(ctx context.Context, center string) ([]domain.Milestone, error) {
	return t.store.ListMilestones(ctx, strings.TrimSpace(center))
}

// PostStatusUpdate records a progress note. An empty date defaults to today.
func (t *Tracker) PostStatusUpdate(ctx context.Context, center, update, date string) (*domain.StatusUpdate, error) {
	center, update, date = strings.TrimSpace(center), strings.TrimSpace(update), strings.TrimSpace(date)
	if center == "" || update == "" {
		return nil, apperr.ErrValidation.WithMessage("centerName and update are required")
	}
	now := t.timestamp()
	if date == "" {
		date = now.Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, apperr.ErrValidation.WithMessagef("date must be YYYY-MM-DD, got %q", date)
	}
	u := &domain.StatusUpdate{CenterName: center, Update: update, Date: date, CreatedAt: now}
	if err := t.store.CreateStatusUpdate(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (t *Tracker) ListStatusUpdates(ctx context.Context, center string) ([]domain.StatusUpdate, error) {
	return t.store.ListStatusUpdates(ctx, strings.TrimSpace(center))
}

func (t *Tracker) timestamp() time.Time {
	return t.now().UTC().Truncate(time.Millisecond)
}
