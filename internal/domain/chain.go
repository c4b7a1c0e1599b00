package domain

import (
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ComputeHash returns the chain hash of the entry over PrevHash and its content fields.
// CreatedAt is hashed at millisecond precision so the value survives a database round trip.
func (t *Transaction) ComputeHash() string {
	fields := []string{
		t.PrevHash,
		t.Kind,
		t.CenterName,
		t.Source,
		t.WalletAddress,
		t.Amount.String(),
		t.Purpose,
		t.Notes,
		t.ApprovedBy,
		t.RefTag,
		strconv.FormatInt(t.CreatedAt.UnixMilli(), 10),
	}
	sum := blake2b.Sum256([]byte(strings.Join(fields, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// ChainReport is the outcome of walking the transaction log in insertion order
type ChainReport struct {
	Valid    bool `json:"valid"`
	Entries  int  `json:"entries"`
	BrokenAt uint `json:"brokenAt,omitempty"` // ID of the first entry whose link or hash does not match
}

// VerifyChain checks entries sorted by ascending ID
func VerifyChain(entries []Transaction) ChainReport {
	prev := ""
	for i := range entries {
		e := &entries[i]
		if e.PrevHash != prev || e.ComputeHash() != e.Hash {
			return ChainReport{Valid: false, Entries: len(entries), BrokenAt: e.ID}
		}
		prev = e.Hash
	}
	return ChainReport{Valid: true, Entries: len(entries)}
}
