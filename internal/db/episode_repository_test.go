package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hordesim/internal/game/episode"
)

func newResult(scenario string, reason episode.EndReason, reward float64, startedAt time.Time) episode.Result {
	return episode.Result{
		ID:        uuid.New(),
		Scenario:  scenario,
		Reward:    reward,
		Shots:     4,
		Hits:      2,
		Kills:     1,
		Steps:     120,
		EndReason: reason,
		StartedAt: startedAt,
		Duration:  2400 * time.Millisecond,
	}
}

func TestEpisodeRepository_SaveAndRecent(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEpisodeRepository(pool)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	older := newResult(episode.ScenarioHorde, episode.EndWallCollision, -15, base)
	newer := newResult(episode.ScenarioHorde, episode.EndCleared, 80, base.Add(time.Minute))
	pellet := newResult(episode.ScenarioPellet, episode.EndTimeout, -15, base.Add(2*time.Minute))
	pellet.OpponentReward = -15

	for _, r := range []episode.Result{older, newer, pellet} {
		require.NoError(t, repo.Save(ctx, r))
	}

	got, err := repo.Recent(ctx, episode.ScenarioHorde, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
	assert.Equal(t, episode.EndCleared, got[0].EndReason)
	assert.InDelta(t, 80.0, got[0].Reward, 1e-9)
	assert.Equal(t, 2400*time.Millisecond, got[0].Duration)
	assert.True(t, newer.StartedAt.Equal(got[0].StartedAt))

	all, err := repo.Recent(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, pellet.ID, all[0].ID)
	assert.InDelta(t, -15.0, all[0].OpponentReward, 1e-9)
}

func TestEpisodeRepository_SaveIsIdempotent(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEpisodeRepository(pool)
	ctx := context.Background()

	r := newResult(episode.ScenarioHorde, episode.EndMaxSteps, 3, time.Now().UTC())
	require.NoError(t, repo.Save(ctx, r))
	require.NoError(t, repo.Save(ctx, r))

	got, err := repo.Recent(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestEpisodeRepository_CountByReason(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEpisodeRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC()
	for _, r := range []episode.Result{
		newResult(episode.ScenarioHorde, episode.EndCleared, 80, now),
		newResult(episode.ScenarioHorde, episode.EndCleared, 100, now),
		newResult(episode.ScenarioHorde, episode.EndZombieCollision, -15, now),
		newResult(episode.ScenarioPellet, episode.EndTimeout, -15, now),
	} {
		require.NoError(t, repo.Save(ctx, r))
	}

	got, err := repo.CountByReason(ctx, episode.ScenarioHorde)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, episode.EndCleared, got[0].Reason)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 90.0, got[0].AvgReward, 1e-9)
	assert.Equal(t, episode.EndZombieCollision, got[1].Reason)
	assert.Equal(t, 1, got[1].Count)
}

func TestResultWriter_WithPostgres(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEpisodeRepository(pool)

	ch := make(chan episode.Result, 4)
	w := NewResultWriter(repo, ch)
	for range 3 {
		ch <- newResult(episode.ScenarioHorde, episode.EndCleared, 1, time.Now().UTC())
	}
	close(ch)

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, 3, w.Saved())

	got, err := repo.Recent(context.Background(), episode.ScenarioHorde, 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
