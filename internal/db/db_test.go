package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
)

func TestCharacterRepository_SaveLoad(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewCharacterRepository(pool)
	ctx := context.Background()

	_, ok, err := repo.Load(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok, "missing row is not an error")

	want := Progress{CharacterID: 1, Name: "Alice", Gold: 900, Experience: 1200, JobXP: 80, Dignity: 42}
	require.NoError(t, repo.Save(ctx, want))

	got, ok, err := repo.Load(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	want.Gold = 1_000_000_000
	require.NoError(t, repo.Save(ctx, want))
	got, _, err = repo.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000), got.Gold)
}

func TestCharacterRepository_SaveAll(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewCharacterRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, nil))
	require.NoError(t, repo.SaveAll(ctx, []Progress{
		{CharacterID: 1, Name: "Alice", Gold: 10},
		{CharacterID: 2, Name: "Bob", Gold: 20},
	}))

	for id, gold := range map[int64]int64{1: 10, 2: 20} {
		p, ok, err := repo.Load(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, gold, p.Gold)
	}

	err := repo.SaveAll(ctx, []Progress{{CharacterID: 3, Name: "Carol", Gold: -1}})
	assert.Error(t, err, "gold check constraint")
	_, ok, err := repo.Load(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok, "failed batch is rolled back")
}

func TestPenaltyRepository_ActiveMute(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewPenaltyRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	until, err := repo.ActiveMute(ctx, 1, now)
	require.NoError(t, err)
	assert.True(t, until.IsZero())

	require.NoError(t, repo.Mute(ctx, 1, now.Add(-time.Hour), 30*time.Minute, "spam"))
	until, err = repo.ActiveMute(ctx, 1, now)
	require.NoError(t, err)
	assert.True(t, until.IsZero(), "expired mute is ignored")

	require.NoError(t, repo.Mute(ctx, 1, now, 10*time.Minute, "spam"))
	require.NoError(t, repo.Mute(ctx, 1, now, 20*time.Minute, "spam again"))
	until, err = repo.ActiveMute(ctx, 1, now)
	require.NoError(t, err)
	assert.True(t, now.Add(20*time.Minute).Equal(until), "latest expiry wins")
}

func TestPersistenceService_RestoreAndFlush(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	svc := NewPersistenceService(NewCharacterRepository(pool), NewPenaltyRepository(pool))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	alice := testutil.NewSwordsman(1, "Alice")
	alice.SetGold(500)
	alice.AddExperience(100, 10)
	require.NoError(t, svc.Flush(ctx, []*model.Character{alice}))

	require.NoError(t, NewPenaltyRepository(pool).Mute(ctx, 1, now, time.Hour, "spam"))

	fresh := testutil.NewSwordsman(1, "Alice")
	require.NoError(t, svc.Restore(ctx, fresh, now))
	assert.Equal(t, int64(500), fresh.Gold())
	xp, jobXP := fresh.Experience()
	assert.Equal(t, int64(100), xp)
	assert.Equal(t, int64(10), jobXP)
	assert.True(t, now.Add(time.Hour).Equal(fresh.MutedUntil()))

	stranger := testutil.NewSwordsman(9, "Dave")
	stranger.SetGold(7)
	require.NoError(t, svc.Restore(ctx, stranger, now))
	assert.Equal(t, int64(7), stranger.Gold(), "no saved progress keeps starter values")
}

func TestRunMigrations_UpToDate(t *testing.T) {
	pool := testutil.SetupTestDB(t)

	// схема уже накатана SetupTestDB, повторный прогон ничего не меняет
	require.NoError(t, RunMigrations(t.Context(), pool.Config().ConnString()))

	var n int
	require.NoError(t, pool.QueryRow(t.Context(), `SELECT COUNT(*) FROM character_progress`).Scan(&n))
	assert.Zero(t, n)
}
