// Package storage keeps the last successful packing result per owner.
//
// The HTTP server saves every non-halted run so a client can fetch its
// latest shelf again without repacking. [MongoStore] persists records in
// MongoDB; [MemoryStore] serves tests and single-process setups.
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

// Record is one stored packing run.
type Record struct {
	ID        string       `json:"id"`
	Owner     string       `json:"owner"`
	Config    pack.Config  `json:"config"`
	Result    *pack.Result `json:"result"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Store persists the latest record per owner.
type Store interface {
	// SaveLast replaces the owner's stored record.
	SaveLast(ctx context.Context, rec Record) error

	// Last returns the owner's stored record, or an error with
	// [kerrors.ErrCodeNotFound].
	Last(ctx context.Context, owner string) (*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NormalizeOwner folds owner names so lookups ignore case, matching BGG
// usernames.
func NormalizeOwner(owner string) string {
	return strings.ToLower(strings.TrimSpace(owner))
}

func validate(rec Record) error {
	if NormalizeOwner(rec.Owner) == "" {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "record owner is required")
	}
	if rec.Result == nil {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "record result is required")
	}
	if rec.Result.Halted() {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "halted results are not stored")
	}
	return nil
}

func notFound(owner string) error {
	return kerrors.New(kerrors.ErrCodeNotFound, "no stored result for %q", owner)
}
