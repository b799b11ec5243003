package store

import (
	"context"
	"sync"

	"formbot/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore keeps submissions in insertion order. Data is lost on restart.
// Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []domain.FormSubmission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Insert(_ context.Context, sub domain.FormSubmission) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub.ID = uuid.NewString()
	m.docs = append(m.docs, sub)
	return sub.ID, nil
}

func (m *MemoryStore) Find(_ context.Context, opts FindOptions) ([]domain.FormSubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := opts.skip()
	if start > len(m.docs) {
		start = len(m.docs)
	}
	end := min(start+opts.EffectiveLimit(), len(m.docs))

	result := make([]domain.FormSubmission, end-start)
	copy(result, m.docs[start:end])
	return result, nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

func (m *MemoryStore) Close(context.Context) error {
	return nil
}
