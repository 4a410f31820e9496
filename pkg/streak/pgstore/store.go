// Package pgstore is the Postgres implementation of streak.Store on top of bun.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/quatton/portfolio/pkg/db/models"
	"github.com/quatton/portfolio/pkg/streak"
)

type Store struct {
	db bun.IDB
}

func New(db bun.IDB) *Store {
	return &Store{db: db}
}

func (s *Store) Ensure(ctx context.Context, seed streak.Record) (*streak.Record, error) {
	m := toModel(seed)
	_, err := s.db.NewInsert().
		Model(m).
		On("CONFLICT (user_email) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Set("avatar_url = EXCLUDED.avatar_url").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("ensure strike record: %w", err)
	}
	rec := toRecord(m)
	return &rec, nil
}

// Update locks the row with SELECT ... FOR UPDATE for the duration of fn.
func (s *Store) Update(ctx context.Context, email string, fn func(*streak.Record) error) (*streak.Record, error) {
	var out streak.Record
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		m := new(models.StrikeRecord)
		err := tx.NewSelect().
			Model(m).
			Where("user_email = ?", email).
			For("UPDATE").
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return streak.ErrRecordNotFound
		}
		if err != nil {
			return fmt.Errorf("lock strike record: %w", err)
		}

		rec := toRecord(m)
		if err := fn(&rec); err != nil {
			return err
		}

		m = toModel(rec)
		if _, err := tx.NewUpdate().Model(m).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("update strike record: %w", err)
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) List(ctx context.Context, board streak.Board) ([]streak.Record, error) {
	var rows []models.StrikeRecord
	err := s.db.NewSelect().
		Model(&rows).
		OrderExpr("? DESC", bun.Ident(boardColumn(board))).
		Order("user_email ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list strike records: %w", err)
	}

	out := make([]streak.Record, 0, len(rows))
	for i := range rows {
		out = append(out, toRecord(&rows[i]))
	}
	return out, nil
}

func boardColumn(board streak.Board) string {
	if board == streak.BoardMax {
		return "max_streak"
	}
	return "current_streak"
}

func toModel(r streak.Record) *models.StrikeRecord {
	r = r.Clone()
	return &models.StrikeRecord{
		ID:               r.ID,
		UserEmail:        r.UserEmail,
		DisplayName:      r.DisplayName,
		AvatarURL:        r.AvatarURL,
		StrikeName:       r.StrikeName,
		CurrentStreak:    r.CurrentStreak,
		MaxStreak:        r.MaxStreak,
		LastStrikeDate:   r.LastStrikeDate,
		RestoredOn:       r.RestoredOn,
		RestoreCount:     r.RestoreCount,
		LastRestoreMonth: r.LastRestoreMonth,
		LastRestoreYear:  r.LastRestoreYear,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toRecord(m *models.StrikeRecord) streak.Record {
	r := streak.Record{
		ID:               m.ID,
		UserEmail:        m.UserEmail,
		DisplayName:      m.DisplayName,
		AvatarURL:        m.AvatarURL,
		StrikeName:       m.StrikeName,
		CurrentStreak:    m.CurrentStreak,
		MaxStreak:        m.MaxStreak,
		RestoreCount:     m.RestoreCount,
		LastRestoreMonth: m.LastRestoreMonth,
		LastRestoreYear:  m.LastRestoreYear,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
	r.LastStrikeDate = utcDate(m.LastStrikeDate)
	r.RestoredOn = utcDate(m.RestoredOn)
	return r.Clone()
}

// date columns come back in the session time zone
func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, mo, d := t.Date()
	day := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &day
}
