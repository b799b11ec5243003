// Package store defines the submission store interface and its backends.
package store

import (
	"context"

	"formbot/internal/domain"
)

// DefaultLimit is the page size used when FindOptions.Limit is not positive.
// It mirrors the first batch a Mongo shell cursor shows.
const DefaultLimit = 20

// FindOptions bounds a read. Records past Skip+Limit are only returned by
// asking for the next page.
type FindOptions struct {
	Skip  int
	Limit int
}

// EffectiveLimit returns Limit, or DefaultLimit when Limit is not positive.
func (o FindOptions) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

func (o FindOptions) skip() int {
	if o.Skip < 0 {
		return 0
	}
	return o.Skip
}

// Store is the interface that all submission backends implement.
// Every backend operates on a single collection chosen when it is built.
type Store interface {
	// Insert persists sub and returns the identifier assigned by the store.
	// Fails with a connectivity or write error from pkg/errors.
	Insert(ctx context.Context, sub domain.FormSubmission) (string, error)

	// Find returns records in insertion order (ascending _id or primary key
	// for mongo and sql), bounded by opts.
	// An empty collection yields an empty slice and no error.
	Find(ctx context.Context, opts FindOptions) ([]domain.FormSubmission, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases connections held by the store.
	Close(ctx context.Context) error
}
