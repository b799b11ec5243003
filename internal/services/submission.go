package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"formbot/internal/domain"
	"formbot/internal/metrics"
	"formbot/internal/store"
)

// SubmitInput holds the questionnaire answers. Values are stored as given.
type SubmitInput struct {
	Company string
	Name    string
	Email   string
	Phone   string
}

// SubmitResult acknowledges a stored submission
type SubmitResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// SubmissionService writes and reads form submissions
type SubmissionService struct {
	store    store.Store
	limit    int
	now      func() time.Time
	notifier Notifier
}

// Option configures a SubmissionService
type Option func(*SubmissionService)

// WithClock replaces the clock used to stamp created_at
func WithClock(now func() time.Time) Option {
	return func(s *SubmissionService) {
		s.now = now
	}
}

// WithNotifier sends every stored submission to n
func WithNotifier(n Notifier) Option {
	return func(s *SubmissionService) {
		s.notifier = n
	}
}

// NewSubmissionService creates a new submission service. limit is the page
// size used when a caller does not ask for one.
func NewSubmissionService(st store.Store, limit int, opts ...Option) *SubmissionService {
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	s := &SubmissionService{
		store: st,
		limit: limit,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores one submission stamped with the current time. The admin
// notification runs after the insert and its failure never fails Submit.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	log.Printf("[SUBMISSION] Submit request: company=%s, name=%s", in.Company, in.Name)

	sub := domain.FormSubmission{
		Company:   in.Company,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: s.now(),
	}

	id, err := s.store.Insert(ctx, sub)
	if err != nil {
		log.Printf("[SUBMISSION] Submit failed: %v", err)
		return nil, fmt.Errorf("failed to save form submission: %w", err)
	}

	log.Printf("[SUBMISSION] Submit successful: id=%s", id)
	metrics.RecordSubmission()

	if s.notifier != nil {
		sub.ID = id
		if err := s.notifier.NotifySubmission(ctx, sub); err != nil {
			log.Printf("[SUBMISSION] Warning: failed to notify admin for id=%s: %v", id, err)
		}
	}

	return &SubmitResult{
		ID:      id,
		Message: "Submission stored",
	}, nil
}

// List returns one page of submissions. A non-positive limit falls back to
// the service page size.
func (s *SubmissionService) List(ctx context.Context, skip, limit int) ([]domain.FormSubmission, error) {
	if limit <= 0 {
		limit = s.limit
	}
	log.Printf("[SUBMISSION] List request: skip=%d, limit=%d", skip, limit)

	subs, err := s.store.Find(ctx, store.FindOptions{Skip: skip, Limit: limit})
	if err != nil {
		log.Printf("[SUBMISSION] List failed: %v", err)
		return nil, fmt.Errorf("failed to fetch form submissions: %w", err)
	}

	metrics.RecordRead(len(subs))
	log.Printf("[SUBMISSION] List successful: returned %d submissions", len(subs))
	return subs, nil
}

// ListAll walks every page until the store returns a short one. Pages
// follow the store's id order, so records inserted while paging show up on a
// later page instead of shifting earlier ones; there is no snapshot.
func (s *SubmissionService) ListAll(ctx context.Context) ([]domain.FormSubmission, error) {
	all := []domain.FormSubmission{}
	for skip := 0; ; skip += s.limit {
		page, err := s.List(ctx, skip, s.limit)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < s.limit {
			return all, nil
		}
	}
}

// Ping checks the store is reachable
func (s *SubmissionService) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store health check failed: %w", err)
	}
	return nil
}
