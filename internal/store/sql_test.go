package store

import (
	"context"
	"path/filepath"
	"testing"

	"formbot/internal/config"
	"formbot/internal/database"
	"formbot/internal/domain"
	apperrors "formbot/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forms.db")
	db, err := database.OpenSQL(config.DatabaseConfig{URL: "sqlite:///" + path}, false)
	require.NoError(t, err)

	s, err := NewSQLStore(db, "form_submissions")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestSQLStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return newSQLiteStore(t)
	})
}

func TestSQLStoreAssignsSequentialIDs(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	id1, err := s.Insert(ctx, domain.SampleSubmission(t0))
	require.NoError(t, err)
	id2, err := s.Insert(ctx, domain.SampleSubmission(t0))
	require.NoError(t, err)

	assert.Equal(t, "1", id1)
	assert.Equal(t, "2", id2)
}

func TestSQLStorePing(t *testing.T) {
	s := newSQLiteStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestSQLStoreClosedIsNotSilent(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.Close(context.Background()))

	_, err := s.Insert(context.Background(), domain.SampleSubmission(t0))
	require.Error(t, err)
	assert.True(t, apperrors.IsWrite(err) || apperrors.IsConnectivity(err), "got %v", err)
}

func TestSQLStoreMissingTableClassified(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.db.Migrator().DropTable("form_submissions"))

	_, err := s.Insert(ctx, domain.SampleSubmission(t0))
	require.Error(t, err)
	assert.True(t, apperrors.IsWrite(err), "got %v", err)

	_, err = s.Find(ctx, FindOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsRead(err), "got %v", err)
}
