package db

import "gorm.io/gorm"

// Stores bundles the gorm-backed stores. Ledger and request writes share one
// chain writer so every transaction-log append extends the same hash chain.
type Stores struct {
	Ledger     *LedgerStore
	Requests   *RequestStore
	Identities *IdentityStore
	Progress   *ProgressStore
}

// NewStores builds every store over db
func NewStores(db *gorm.DB) *Stores {
	chain := &chainWriter{db: db}
	return &Stores{
		Ledger:     &LedgerStore{db: db, chain: chain},
		Requests:   &RequestStore{db: db, chain: chain},
		Identities: &IdentityStore{db: db},
		Progress:   &ProgressStore{db: db},
	}
}
