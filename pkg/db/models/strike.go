package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StrikeRecord is one row per user of the strike game.
type StrikeRecord struct {
	bun.BaseModel `bun:"table:strike_records,alias:sr"`

	ID          uuid.UUID `bun:"type:uuid,default:gen_random_uuid(),pk"`
	UserEmail   string    `bun:",unique,notnull"`
	DisplayName string    `bun:",nullzero"`
	AvatarURL   string    `bun:",nullzero"`
	StrikeName  string    `bun:",notnull"`

	CurrentStreak  int        `bun:",notnull,default:0"`
	MaxStreak      int        `bun:",notnull,default:0"`
	LastStrikeDate *time.Time `bun:"type:date"`
	RestoredOn     *time.Time `bun:"type:date"`

	RestoreCount     int  `bun:",notnull,default:0"`
	LastRestoreMonth *int `bun:"type:smallint"`
	LastRestoreYear  *int `bun:"type:smallint"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
