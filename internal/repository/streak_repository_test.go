package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakRepositoryGetOrCreate(t *testing.T) {
	repo := NewStreakRepository(newTestDB(t))
	userID := uuid.New()

	state, err := repo.GetOrCreate(userID, 5)
	require.NoError(t, err)
	assert.Equal(t, userID, state.UserID)
	assert.Equal(t, 5, state.Threshold)
	assert.Equal(t, 0, state.CurrentStreak)

	// Second call returns the stored row, not a fresh default.
	state.CurrentStreak = 3
	require.NoError(t, repo.Update(state))

	again, err := repo.GetOrCreate(userID, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, again.CurrentStreak)
	assert.Equal(t, 5, again.Threshold)
}

func TestStreakRepositoryUpdate(t *testing.T) {
	repo := NewStreakRepository(newTestDB(t))
	userID := uuid.New()

	state, err := repo.GetOrCreate(userID, 5)
	require.NoError(t, err)

	lastActive := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	state.CurrentStreak = 4
	state.LongestStreak = 6
	state.LastActiveDate = &lastActive
	require.NoError(t, repo.Update(state))

	got, err := repo.GetOrCreate(userID, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentStreak)
	assert.Equal(t, 6, got.LongestStreak)
	require.NotNil(t, got.LastActiveDate)
	assert.True(t, lastActive.Equal(*got.LastActiveDate))
}

func TestStreakRepositoryUpdateTimezone(t *testing.T) {
	repo := NewStreakRepository(newTestDB(t))
	userID := uuid.New()

	_, err := repo.GetOrCreate(userID, 5)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTimezone(userID, "Asia/Tokyo"))

	got, err := repo.GetOrCreate(userID, 5)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", got.Timezone)
}
