package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/combatclasses/internal/model"
)

func TestJournalRepository_InsertAndRecent(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewJournalRepository(pool)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ada := model.FormID(0x01014000)
	bandit := model.FormID(0x0001A676)
	sevenfold := model.FormID(0x01014002)

	entries := []model.JournalEntry{
		{Time: base, ActorID: ada, Actor: "Ada", Kind: model.JournalImprovementsApplied, Detail: "marksman 25.00 -> 55.00"},
		{Time: base.Add(time.Second), ActorID: ada, Actor: "Ada", Kind: model.JournalKnockbackStarted, WeaponID: sevenfold},
		{Time: base.Add(11 * time.Second), ActorID: ada, Actor: "Ada", Kind: model.JournalKnockbackPerformed, WeaponID: sevenfold, TargetID: bandit},
		{Time: base, ActorID: 0x01014003, Actor: "Bjorn", Kind: model.JournalImprovementsApplied},
	}
	require.NoError(t, repo.Insert(ctx, entries))
	require.NoError(t, repo.Insert(ctx, nil))

	got, err := repo.Recent(ctx, ada, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, model.JournalKnockbackPerformed, got[0].Kind)
	assert.Equal(t, bandit, got[0].TargetID)
	assert.Equal(t, sevenfold, got[0].WeaponID)
	assert.True(t, got[0].Time.Equal(base.Add(11*time.Second)))
	assert.Equal(t, model.JournalKnockbackStarted, got[1].Kind)

	all, err := repo.Recent(ctx, ada, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "marksman 25.00 -> 55.00", all[2].Detail)
}

func TestJournalRepository_RecentUnknownActor(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewJournalRepository(pool)

	got, err := repo.Recent(context.Background(), 0x0BADF00D, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunMigrations_SchemaVersion(t *testing.T) {
	setupTestDB(t)

	assert.Equal(t, int64(1), schemaVersion)
}
