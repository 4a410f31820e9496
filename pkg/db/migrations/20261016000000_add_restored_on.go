package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw("ALTER TABLE strike_records ADD COLUMN IF NOT EXISTS restored_on date").Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw("ALTER TABLE strike_records DROP COLUMN IF EXISTS restored_on").Exec(ctx)
		return err
	})
}
