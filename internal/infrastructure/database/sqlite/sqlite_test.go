package sqlite

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/pkg/logger"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(":memory:", logger.NewNop())
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func TestRosterRepository_AppendAndFetch(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(setupTestDB(t))

	people, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, people)

	p := &entity.Person{ID: "22CS099", Name: "Ira Das", BirthDate: time.Date(2004, time.March, 14, 0, 0, 0, 0, time.UTC), CountryCode: "+91", MobileNumber: "9000000001"}
	require.NoError(t, repo.Append(ctx, p))

	people, err = repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Ira Das", people[0].Name)
	assert.True(t, p.BirthDate.Equal(people[0].BirthDate))
	assert.Equal(t, "+919000000001", people[0].Phone())
}

func TestRosterRepository_AppendDuplicateFails(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(setupTestDB(t))

	require.NoError(t, repo.Append(ctx, &entity.Person{ID: "A1", Name: "First"}))
	assert.Error(t, repo.Append(ctx, &entity.Person{ID: "A1", Name: "Second"}))
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	n, err := SeedIfEmpty(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(SampleRoster()), n)

	n, err = SeedIfEmpty(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, n)

	people, err := NewRosterRepository(db).FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, people, len(SampleRoster()))
}

func TestKVRepository(t *testing.T) {
	ctx := context.Background()
	kv := NewKVRepository(setupTestDB(t))

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "a", []byte("one")))
	require.NoError(t, kv.Set(ctx, "a", []byte("two")))
	require.NoError(t, kv.Set(ctx, "b", []byte("three")))

	v, ok, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("two"), v)

	require.NoError(t, kv.Delete(ctx, "a", "missing"))
	_, ok, err = kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = kv.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, kv.Delete(ctx))
}

func TestCoordinatorRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCoordinatorRepository(setupTestDB(t))

	_, err := repo.FindByID(ctx, "U1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Save(ctx, &entity.Coordinator{ID: "U1", DisplayName: "Priya"}))
	require.NoError(t, repo.Save(ctx, &entity.Coordinator{ID: "U2"}))
	require.NoError(t, repo.Save(ctx, &entity.Coordinator{ID: "U1", DisplayName: "Priya K"}))

	c, err := repo.FindByID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "Priya K", c.DisplayName)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, "U1"))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
