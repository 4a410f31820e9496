package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/quatton/portfolio/pkg/db/models"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().
			Model((*models.StrikeRecord)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = db.NewRaw(`ALTER TABLE strike_records
			ADD CONSTRAINT strike_records_counters_check
			CHECK (current_streak >= 0 AND max_streak >= 0 AND restore_count BETWEEN 0 AND 3)`).
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*models.StrikeRecord)(nil)).IfExists().Exec(ctx)
		return err
	})
}
