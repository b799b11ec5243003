package store

import (
	"context"
	"time"

	"formbot/internal/domain"
	"formbot/internal/metrics"
)

type instrumented struct {
	next Store
}

// Instrument records the duration and outcome of every call on s.
func Instrument(s Store) Store {
	return &instrumented{next: s}
}

func (i *instrumented) Insert(ctx context.Context, sub domain.FormSubmission) (string, error) {
	start := time.Now()
	id, err := i.next.Insert(ctx, sub)
	metrics.RecordDBQuery("insert", time.Since(start), err)
	return id, err
}

func (i *instrumented) Find(ctx context.Context, opts FindOptions) ([]domain.FormSubmission, error) {
	start := time.Now()
	subs, err := i.next.Find(ctx, opts)
	metrics.RecordDBQuery("find", time.Since(start), err)
	return subs, err
}

func (i *instrumented) Ping(ctx context.Context) error {
	start := time.Now()
	err := i.next.Ping(ctx)
	metrics.RecordDBQuery("ping", time.Since(start), err)
	return err
}

func (i *instrumented) Close(ctx context.Context) error {
	return i.next.Close(ctx)
}
