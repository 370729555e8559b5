package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logpanel/models"
	"logpanel/repositories"
)

func newTestService() LogService {
	return NewLogService(repositories.NewMemoryLogRepository())
}

func TestCreateNormalizesInfo(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	entries, err := svc.Create(ctx, "hello")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, "Info: hello", entries[0].Info)
	assert.Equal(t, models.ResultCreated, entries[0].Result)
	assert.NotEmpty(t, entries[0].Time)
}

func TestUpdateNormalizesInfoAndRefreshesResult(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	entries, err := svc.Create(ctx, "hello")
	require.NoError(t, err)
	id := entries[0].ID

	entries, err = svc.Update(ctx, id, "world")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "Edited: world", entries[0].Info)
	assert.Equal(t, models.ResultUpdated, entries[0].Result)
}

func TestDeleteReturnsRemainingEntries(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "keep")
	require.NoError(t, err)
	entries, err := svc.Create(ctx, "drop")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = svc.Delete(ctx, entries[0].ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Info: keep", entries[0].Info)
}

func TestUpdateAndDeleteMissingIDFail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Update(ctx, 99, "x")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = svc.Delete(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = svc.Update(ctx, -1, "x")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRecordLoginAttemptOutcomes(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.RecordLoginAttempt(ctx, "admin", true))
	require.NoError(t, svc.RecordLoginAttempt(ctx, "intruder", false))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, "Login -> User: intruder", entries[0].Info)
	assert.Equal(t, models.ResultLoginFailed, entries[0].Result)
	assert.Equal(t, "Login -> User: admin", entries[1].Info)
	assert.Equal(t, models.ResultLoginSuccess, entries[1].Result)
}

func TestRecordLoginAttemptNeverStoresPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// The sink only ever receives the username; the entry must carry nothing else
	require.NoError(t, svc.RecordLoginAttempt(ctx, "admin", false))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Login -> User: admin", entries[0].Info)
}
