package pgstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quatton/portfolio/pkg/db"
	"github.com/quatton/portfolio/pkg/db/models"
	"github.com/quatton/portfolio/pkg/plog"
	"github.com/quatton/portfolio/pkg/streak"
)

func TestModelMapping_KeepsNullableFields(t *testing.T) {
	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	month, year := 10, 2026
	rec := streak.Record{
		ID:               uuid.New(),
		UserEmail:        "nova@example.com",
		StrikeName:       "Nova",
		CurrentStreak:    3,
		MaxStreak:        9,
		LastStrikeDate:   &day,
		RestoredOn:       &day,
		RestoreCount:     2,
		LastRestoreMonth: &month,
		LastRestoreYear:  &year,
	}

	m := toModel(rec)
	got := toRecord(m)
	assert.Equal(t, rec, got)

	// the model must not alias the record's pointers
	*m.LastRestoreMonth = 1
	assert.Equal(t, 10, *rec.LastRestoreMonth)

	empty := toRecord(toModel(streak.Record{UserEmail: "x@example.com"}))
	assert.Nil(t, empty.LastStrikeDate)
	assert.Nil(t, empty.RestoredOn)
	assert.Nil(t, empty.LastRestoreMonth)
}

func TestToRecord_DateIgnoresSessionZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	local := time.Date(2026, 10, 15, 0, 0, 0, 0, tokyo)

	got := toRecord(&models.StrikeRecord{UserEmail: "jst@example.com", LastStrikeDate: &local, RestoredOn: &local})
	require.NotNil(t, got.LastStrikeDate)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), *got.LastStrikeDate)
	require.NotNil(t, got.RestoredOn)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), *got.RestoredOn)
}

func TestBoardColumn(t *testing.T) {
	assert.Equal(t, "current_streak", boardColumn(streak.BoardCurrent))
	assert.Equal(t, "max_streak", boardColumn(streak.BoardMax))
}

// Integration tests run only when STRIKE_TEST_DB_HOST points at a Postgres
// instance; the other STRIKE_TEST_DB_* variables follow db.Config.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("STRIKE_TEST_DB_HOST") == "" {
		t.Skip("STRIKE_TEST_DB_HOST not set")
	}

	var cfg db.Config
	require.NoError(t, envconfig.Process("STRIKE_TEST_DB", &cfg))

	ctx := context.Background()
	conn, err := db.New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(ctx, conn, plog.NewLogger(slog.LevelError, io.Discard)))
	_, err = conn.NewRaw("TRUNCATE strike_records").Exec(ctx)
	require.NoError(t, err)

	return New(conn)
}

func TestStore_Postgres(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	seed := streak.Record{UserEmail: "pg@example.com", DisplayName: "PG", StrikeName: "PG", CreatedAt: now, UpdatedAt: now}
	first, err := store.Ensure(ctx, seed)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first.ID)

	seed.DisplayName = "PG 2"
	seed.StrikeName = "ignored"
	second, err := store.Ensure(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "PG 2", second.DisplayName)
	assert.Equal(t, "PG", second.StrikeName)

	_, err = store.Update(ctx, "missing@example.com", func(*streak.Record) error { return nil })
	assert.ErrorIs(t, err, streak.ErrRecordNotFound)

	boom := errors.New("boom")
	_, err = store.Update(ctx, "pg@example.com", func(r *streak.Record) error {
		r.CurrentStreak = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	updated, err := store.Update(ctx, "pg@example.com", func(r *streak.Record) error {
		return streak.ApplyUpgrade(r, now)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentStreak)

	list, err := store.List(ctx, streak.BoardCurrent)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].CurrentStreak)
	assert.Equal(t, streak.Day(now), *list[0].LastStrikeDate)
}

func TestStore_PostgresSerializesUpgrades(t *testing.T) {
	store := openTestStore(t)
	engine := streak.NewEngine(store, streak.WithLogger(plog.NewLogger(slog.LevelError, io.Discard)))
	ctx := context.Background()
	id := streak.Identity{Email: "race@example.com"}

	_, err := engine.Fetch(ctx, id)
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.Upgrade(ctx, id); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}
