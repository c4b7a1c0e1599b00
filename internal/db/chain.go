package db

import (
	"context"
	"sync"

	"chainvora/internal/domain"

	"gorm.io/gorm"
)

// chainWriter runs a record write and its transaction-log append in one gorm
// transaction. Appends are serialized so the hash chain has a single head.
type chainWriter struct {
	mu sync.Mutex
	db *gorm.DB
}

func (w *chainWriter) write(ctx context.Context, entry *domain.Transaction, fn func(tx *gorm.DB) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return err // Return error to rollback
		}
		return appendEntry(tx, entry)
	})
}

// appendEntry links entry to the current chain head and saves it
func appendEntry(tx *gorm.DB, entry *domain.Transaction) error {
	var head domain.Transaction
	if err := tx.Order("id desc").Limit(1).Find(&head).Error; err != nil {
		return err
	}
	entry.PrevHash = head.Hash // Empty for the first entry
	entry.Hash = entry.ComputeHash()
	return tx.Create(entry).Error
}
