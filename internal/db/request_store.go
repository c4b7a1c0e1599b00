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

// errStale marks a conditional update that matched no row
var errStale = stderrors.New("request changed concurrently")

// RequestStore persists funding requests and their remarks
type RequestStore struct {
	db    *gorm.DB
	chain *chainWriter
}

// CreateRequest saves the request and its log entry atomically
func (s *RequestStore) CreateRequest(ctx context.Context, r *domain.FundingRequest, entry *domain.Transaction) error {
	err := s.chain.write(ctx, entry, func(tx *gorm.DB) error {
		return tx.Omit("Remarks").Create(r).Error
	})
	return apperr.Storage(errors.Wrap(err, "create request"))
}

// GetRequest loads a request with its remarks in insertion order
func (s *RequestStore) GetRequest(ctx context.Context, id uint) (*domain.FundingRequest, error) {
	var r domain.FundingRequest
	err := s.withRemarks(s.db.WithContext(ctx)).First(&r, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound.WithMessagef("request %d not found", id)
	}
	if err != nil {
		return nil, apperr.Storage(errors.Wrap(err, "get request"))
	}
	return &r, nil
}

// ListRequests returns requests in insertion order, filtered by status when non-empty
func (s *RequestStore) ListRequests(ctx context.Context, status domain.RequestStatus) ([]domain.FundingRequest, error) {
	out := []domain.FundingRequest{}
	query := s.withRemarks(s.db.WithContext(ctx)).Order("id asc")
	if status != "" {
		query = query.Where("status = ?", status) // Filter by lifecycle state
	}
	err := query.Find(&out).Error
	return out, apperr.Storage(errors.Wrap(err, "list requests"))
}

// UpdateStatus moves the request from one status to another and logs the change atomically.
// It reports false when the request no longer has status from.
func (s *RequestStore) UpdateStatus(ctx context.Context, id uint, from, to domain.RequestStatus, approvedBy string, entry *domain.Transaction) (bool, error) {
	err := s.chain.write(ctx, entry, func(tx *gorm.DB) error {
		updates := map[string]any{"status": to, "updated_at": entry.CreatedAt} // Change time is the log entry time
		if approvedBy != "" {
			updates["approved_by"] = approvedBy
		}
		res := tx.Model(&domain.FundingRequest{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStale
		}
		return nil
	})
	if stderrors.Is(err, errStale) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Storage(errors.Wrap(err, "update status"))
	}
	return true, nil
}

// AddRemark appends a remark to its request
func (s *RequestStore) AddRemark(ctx context.Context, remark *domain.Remark) error {
	err := s.db.WithContext(ctx).Create(remark).Error
	return apperr.Storage(errors.Wrap(err, "add remark"))
}

// SetProof stores the proof reference while the request is not terminal.
// It reports false when the request is terminal or missing.
func (s *RequestStore) SetProof(ctx context.Context, id uint, ref string, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&domain.FundingRequest{}).
		Where("id = ? AND status IN ?", id, []domain.RequestStatus{domain.StatusPending, domain.StatusReviewed}).
		Updates(map[string]any{"proof_url": ref, "updated_at": at})
	if res.Error != nil {
		return false, apperr.Storage(errors.Wrap(res.Error, "set proof"))
	}
	return res.RowsAffected > 0, nil
}

func (s *RequestStore) withRemarks(db *gorm.DB) *gorm.DB {
	return db.Preload("Remarks", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	})
}
