//go:build integration_test || all_tests

package habits

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitflow/backend/internal/datekey"
	"github.com/habitflow/backend/internal/db"
)

func testRepoSetup(t *testing.T) (*Repo, int, func()) {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	t.Logf("using postres host: %s", host)

	dbPool, err := db.NewDBPool(timeoutCtx, db.NewDBPoolParams{
		DBHost:     host,
		DBPort:     "5432",
		DBName:     "habitflow",
		DBPassword: os.Getenv("POSTGRES_PASSWORD"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(timeoutCtx, dbPool))

	_, err = dbPool.Exec(timeoutCtx, `DELETE FROM habit`)
	require.NoError(t, err)

	var ownerID int
	require.NoError(t, dbPool.QueryRow(timeoutCtx, `
		INSERT INTO app_user (email, name, password_hash)
		VALUES ($1, $2, 'x')
		RETURNING id
	`, gofakeit.Email(), gofakeit.Name()).Scan(&ownerID))

	return NewRepo(dbPool), ownerID, func() {
		_, _ = dbPool.Exec(context.Background(), `DELETE FROM app_user WHERE id = $1`, ownerID)
		dbPool.Close()
	}
}

func fakeHabit(ownerID int) *Habit {
	return &Habit{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          gofakeit.HipsterSentence(3),
		Category:      CategoryLearning,
		Icon:          DefaultIcon,
		ScheduledDays: []Weekday{"Mon", "Fri"},
		ScheduledTime: "07:30",
		Color:         gofakeit.SafeColor(),
		Completions:   Completions{},
	}
}

func TestRepo_BasicCRUD(t *testing.T) {
	repo, ownerID, shutdown := testRepoSetup(t)
	defer shutdown()

	ctx := context.Background()

	habits, err := repo.FindAllByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Empty(t, habits)

	h1 := fakeHabit(ownerID)
	h2 := fakeHabit(ownerID)
	require.NoError(t, repo.Save(ctx, h1))
	require.NoError(t, repo.Save(ctx, h2))
	assert.False(t, h1.CreatedAt.IsZero())

	found, err := repo.Find(ctx, h1.ID)
	require.NoError(t, err)
	assert.Equal(t, h1.Name, found.Name)
	assert.Equal(t, []Weekday{"Mon", "Fri"}, found.ScheduledDays)
	assert.Equal(t, "07:30", found.ScheduledTime)
	assert.NotNil(t, found.Completions)

	habits, err = repo.FindAllByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	// newest first
	assert.Equal(t, h2.ID, habits[0].ID)

	updated, err := repo.Update(ctx, h1.ID, func(h *Habit) error {
		h.Completions.Toggle("2024-03-10")
		h.Completions.Toggle("2024-03-09")
		h.Streak = 2
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Streak)

	found, err = repo.Find(ctx, h1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Streak)
	assert.True(t, found.Completions.Done(datekey.DateKey("2024-03-10")))
	assert.Equal(t, []datekey.DateKey{"2024-03-09", "2024-03-10"}, found.Completions.CompletedDays())

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{h1.ID, h2.ID}, ids)

	require.NoError(t, repo.Delete(ctx, h1.ID))
	_, err = repo.Find(ctx, h1.ID)
	assert.ErrorIs(t, err, ErrHabitNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, h1.ID), ErrHabitNotFound)
	_, err = repo.Update(ctx, h1.ID, func(*Habit) error { return nil })
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestRepo_ConcurrentToggles(t *testing.T) {
	repo, ownerID, shutdown := testRepoSetup(t)
	defer shutdown()

	ctx := context.Background()
	h := fakeHabit(ownerID)
	require.NoError(t, repo.Save(ctx, h))

	days := datekey.Window("2024-03-20", 20)
	var wg sync.WaitGroup
	for _, day := range days {
		wg.Add(1)
		go func(day datekey.DateKey) {
			defer wg.Done()
			_, err := repo.Update(ctx, h.ID, func(h *Habit) error {
				h.Completions.Toggle(day)
				return nil
			})
			assert.NoError(t, err)
		}(day)
	}
	wg.Wait()

	found, err := repo.Find(ctx, h.ID)
	require.NoError(t, err)
	// no lost updates under the row lock
	assert.Len(t, found.Completions.CompletedDays(), len(days))
}
