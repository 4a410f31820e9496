package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		stmts := []string{
			"CREATE INDEX IF NOT EXISTS strike_records_current_idx ON strike_records (current_streak DESC, user_email ASC)",
			"CREATE INDEX IF NOT EXISTS strike_records_max_idx ON strike_records (max_streak DESC, user_email ASC)",
		}
		for _, stmt := range stmts {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		stmts := []string{
			"DROP INDEX IF EXISTS strike_records_max_idx",
			"DROP INDEX IF EXISTS strike_records_current_idx",
		}
		for _, stmt := range stmts {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
