package streak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quatton/portfolio/pkg/kv"
	"github.com/quatton/portfolio/pkg/perr"
	"github.com/quatton/portfolio/pkg/plog"
)

const leaderboardKeyPrefix = "strike:leaderboard:"

// Engine applies streak actions for an authenticated Identity.
type Engine struct {
	store    Store
	cache    kv.Store
	cacheTTL time.Duration
	now      func() time.Time
	logger   *plog.Logger
}

type Option func(*Engine)

// WithCache caches leaderboard listings in c for ttl. A zero ttl disables
// caching.
func WithCache(c kv.Store, ttl time.Duration) Option {
	return func(e *Engine) {
		e.cache = c
		e.cacheTTL = ttl
	}
}

// WithClock overrides the wall clock used for calendar-day arithmetic.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(l *plog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		now:    time.Now,
		logger: plog.NewDefault(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now is the engine clock in UTC.
func (e *Engine) Now() time.Time {
	return e.now().UTC()
}

// Fetch returns the caller's record, creating it on first access. The stored
// display name and avatar are refreshed from the session.
func (e *Engine) Fetch(ctx context.Context, id Identity) (*Record, error) {
	start := time.Now()
	id, err := e.identity(id)
	if err != nil {
		return nil, e.fail("fetch", id, start, err)
	}
	rec, err := e.store.Ensure(ctx, newRecord(id, e.now().UTC()))
	if err != nil {
		return nil, e.fail("fetch", id, start, err)
	}
	// a row that was just inserted has never been touched since
	if rec.CreatedAt.Equal(rec.UpdatedAt) {
		e.invalidate(ctx)
	}
	e.observe("fetch", "ok", start)
	return rec, nil
}

// Apply runs one of the POST /strike actions.
func (e *Engine) Apply(ctx context.Context, id Identity, action Action) (*Record, error) {
	action, err := ParseAction(string(action))
	if err != nil {
		e.observe("apply", "rejected", time.Now())
		return nil, err
	}
	return e.mutate(ctx, string(action), id, transition(action))
}

func (e *Engine) Upgrade(ctx context.Context, id Identity) (*Record, error) {
	return e.mutate(ctx, string(ActionUpgrade), id, ApplyUpgrade)
}

func (e *Engine) Restore(ctx context.Context, id Identity) (*Record, error) {
	return e.mutate(ctx, string(ActionRestore), id, ApplyRestore)
}

func (e *Engine) Reset(ctx context.Context, id Identity) (*Record, error) {
	return e.mutate(ctx, string(ActionReset), id, ApplyReset)
}

func (e *Engine) Rename(ctx context.Context, id Identity, name string) (*Record, error) {
	// Reject before touching the store so a bad name never creates a row.
	if _, err := ValidateStrikeName(name); err != nil {
		e.observe("rename", "rejected", time.Now())
		return nil, err
	}
	return e.mutate(ctx, "rename", id, func(r *Record, _ time.Time) error {
		return ApplyRename(r, name)
	})
}

// Leaderboard ranks every record on board. The caller's own row carries the
// live session name and avatar and is flagged IsYou.
func (e *Engine) Leaderboard(ctx context.Context, id Identity, board Board) ([]Entry, error) {
	start := time.Now()
	id, err := e.identity(id)
	if err != nil {
		return nil, e.fail("leaderboard", id, start, err)
	}
	records, err := e.ranked(ctx, board)
	if err != nil {
		return nil, e.fail("leaderboard", id, start, err)
	}
	e.observe("leaderboard", "ok", start)
	return BuildLeaderboard(records, id, board), nil
}

func (e *Engine) mutate(ctx context.Context, action string, id Identity, fn func(*Record, time.Time) error) (*Record, error) {
	start := time.Now()
	id, err := e.identity(id)
	if err != nil {
		return nil, e.fail(action, id, start, err)
	}

	now := e.now().UTC()
	apply := func(r *Record) error {
		if err := fn(r, now); err != nil {
			return err
		}
		r.UpdatedAt = now
		return nil
	}

	rec, err := e.store.Update(ctx, id.Email, apply)
	if errors.Is(err, ErrRecordNotFound) {
		if _, err = e.store.Ensure(ctx, newRecord(id, now)); err == nil {
			rec, err = e.store.Update(ctx, id.Email, apply)
		}
	}
	if err != nil {
		return nil, e.fail(action, id, start, err)
	}

	e.invalidate(ctx)
	e.logger.Debug("strike updated", "action", action, "user", id.Email,
		"current", rec.CurrentStreak, "max", rec.MaxStreak)
	e.observe(action, "ok", start)
	return rec, nil
}

func (e *Engine) identity(id Identity) (Identity, error) {
	id = id.normalized()
	if id.Email == "" {
		return id, ErrUnauthenticated
	}
	return id, nil
}

// fail classifies err: caller errors pass through, anything else is logged
// and wrapped as a store error.
func (e *Engine) fail(action string, id Identity, start time.Time, err error) error {
	if perr.IsClient(err) {
		e.observe(action, "rejected", start)
		return err
	}
	e.observe(action, "error", start)
	e.logger.Error("strike store failure", "action", action, "user", id.Email, "error", err)
	return perr.New(perr.CodeStore, fmt.Errorf("%s: %w", action, err))
}

func (e *Engine) observe(action, outcome string, start time.Time) {
	actionsTotal.WithLabelValues(action, outcome).Inc()
	actionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}

func (e *Engine) cacheEnabled() bool {
	return e.cache != nil && e.cacheTTL > 0
}

// ranked returns records in board order, from the cache when possible. Cache
// failures are logged and fall through to the store.
func (e *Engine) ranked(ctx context.Context, board Board) ([]Record, error) {
	if !e.cacheEnabled() {
		return e.store.List(ctx, board)
	}

	key := leaderboardKeyPrefix + string(board)
	raw, err := e.cache.Get(ctx, key)
	switch {
	case err == nil:
		var records []Record
		if err := json.Unmarshal(raw, &records); err == nil {
			leaderboardCacheTotal.WithLabelValues("hit").Inc()
			return records, nil
		}
		leaderboardCacheTotal.WithLabelValues("error").Inc()
		e.logger.Warn("discarding corrupt leaderboard cache entry", "key", key)
	case errors.Is(err, kv.ErrNotFound):
		leaderboardCacheTotal.WithLabelValues("miss").Inc()
	default:
		leaderboardCacheTotal.WithLabelValues("error").Inc()
		e.logger.Warn("leaderboard cache read failed", "key", key, "error", err)
	}

	records, err := e.store.List(ctx, board)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(records); err == nil {
		if err := e.cache.Set(ctx, key, raw, e.cacheTTL); err != nil {
			e.logger.Warn("leaderboard cache write failed", "key", key, "error", err)
		}
	}
	return records, nil
}

func (e *Engine) invalidate(ctx context.Context) {
	if !e.cacheEnabled() {
		return
	}
	err := e.cache.Delete(ctx,
		leaderboardKeyPrefix+string(BoardCurrent),
		leaderboardKeyPrefix+string(BoardMax),
	)
	if err != nil {
		e.logger.Warn("leaderboard cache invalidation failed", "error", err)
	}
}
