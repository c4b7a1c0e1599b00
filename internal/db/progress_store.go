package db

import (
	"context"
	stderrors "errors"
	"time"

	"chainvora/internal/apperr"
	"chainvora/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProgressStore persists milestones and center status updates
type ProgressStore struct {
	db *gorm.DB
}

func (s *ProgressStore) CreateMilestone(ctx context.Context, m *domain.Milestone) error {
	return apperr.Storage(errors.Wrap(s.db.WithContext(ctx).Create(m).Error, "create milestone"))
}

// CompleteMilestone marks the milestone done at the given time unless it already is
func (s *ProgressStore) CompleteMilestone(ctx context.Context, id uint, at time.Time) (*domain.Milestone, error) {
	var m domain.Milestone
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if m.Completed {
			return nil
		}
		m.Completed = true
		m.CompletedAt = &at
		return tx.Save(&m).Error
	})
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound.WithMessagef("milestone %d not found", id)
	}
	if err != nil {
		return nil, apperr.Storage(errors.Wrap(err, "complete milestone"))
	}
	return &m, nil
}

func (s *ProgressStore) ListMilestones(ctx context.Context, center string) ([]domain.Milestone, error) {
	out := []domain.Milestone{}
	query := s.db.WithContext(ctx).Order("id asc")
	if center != "" {
		query = query.Where("center_name = ?", center)
	}
	return out, apperr.Storage(errors.Wrap(query.Find(&out).Error, "list milestones"))
}

func (s *ProgressStore) CreateStatusUpdate(ctx context.Context, u *domain.StatusUpdate) error {
	return apperr.Storage(errors.Wrap(s.db.WithContext(ctx).Create(u).Error, "create status update"))
}

func (s *ProgressStore) ListStatusUpdates(ctx context.Context, center string) ([]domain.StatusUpdate, error) {
	out := []domain.StatusUpdate{}
	query := s.db.WithContext(ctx).Order("created_at desc, id desc")
	if center != "" {
		query = query.Where("center_name = ?", center)
	}
	return out, apperr.Storage(errors.Wrap(query.Find(&out).Error, "list status updates"))
}
