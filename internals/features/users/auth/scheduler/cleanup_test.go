package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "kostku_backend/internals/features/users/auth/model"
	authRepo "kostku_backend/internals/features/users/auth/repository"
	"kostku_backend/internals/testutil"
)

func TestRunBlacklistCleanup_RemovesOnlyExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, authRepo.BlacklistToken(db, "old", now.Add(-48*time.Hour)))
	require.NoError(t, authRepo.BlacklistToken(db, "fresh", now.Add(time.Hour)))

	// TTL 3 hari: "old" masih disimpan
	n, err := RunBlacklistCleanup(db, now, 3)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = RunBlacklistCleanup(db, now, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left []authModel.TokenBlacklist
	require.NoError(t, db.Unscoped().Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "fresh", left[0].Token)
}
