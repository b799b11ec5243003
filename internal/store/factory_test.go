package store

import (
	"context"
	"path/filepath"
	"testing"

	"formbot/internal/config"
	"formbot/internal/domain"
	apperrors "formbot/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		Store: config.StoreConfig{Backend: backend, QueryLimit: 20},
		Mongo: config.MongoConfig{
			URI:        "mongodb://127.0.0.1:1",
			Database:   "telegram_bot_db",
			Collection: "form_submissions",
		},
	}
}

func TestNewMemory(t *testing.T) {
	s, err := New(context.Background(), testConfig(config.BackendMemory))
	require.NoError(t, err)

	_, err = s.Insert(context.Background(), domain.SampleSubmission(t0))
	require.NoError(t, err)
	subs, err := s.Find(context.Background(), FindOptions{})
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestNewSQLiteUsesCollectionAsTable(t *testing.T) {
	cfg := testConfig(config.BackendSQL)
	cfg.Database.URL = "sqlite:///" + filepath.Join(t.TempDir(), "forms.db")

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	inner := s.(*instrumented).next.(*SQLStore)
	assert.Equal(t, "form_submissions", inner.table)
	assert.True(t, inner.db.Migrator().HasTable("form_submissions"))
}

func TestNewMongoIsLazy(t *testing.T) {
	s, err := New(context.Background(), testConfig(config.BackendMongo))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	_, ok := s.(*instrumented).next.(*MongoStore)
	assert.True(t, ok)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), testConfig("cassandra"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConfig, apperrors.CodeOf(err))
}
