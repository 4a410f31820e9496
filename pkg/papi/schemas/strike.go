package schemas

import (
	"time"

	"github.com/quatton/portfolio/pkg/streak"
)

const dateLayout = "2006-01-02"

type Level struct {
	Threshold int    `json:"threshold" doc:"Minimum streak for this level"`
	Name      string `json:"name" example:"Explorer" doc:"Level name"`
}

type StrikeRecord struct {
	UserEmail        string    `json:"user_email" doc:"Owner of the record"`
	DisplayName      string    `json:"display_name" doc:"Display name from the last session"`
	AvatarURL        string    `json:"avatar_url" doc:"Avatar from the last session"`
	StrikeName       string    `json:"strike_name" doc:"Player-chosen streak name"`
	CurrentStreak    int       `json:"current_streak" doc:"Consecutive days upgraded"`
	MaxStreak        int       `json:"max_streak" doc:"Best streak reached"`
	LastStrikeDate   *string   `json:"last_strike_date" nullable:"true" example:"2026-10-15" doc:"UTC date of the last upgrade"`
	RestoredOn       *string   `json:"restored_on" nullable:"true" example:"2026-10-15" doc:"UTC date of the last restore, an upgrade on that day continues the restored streak"`
	RestoreCount     int       `json:"restore_count" doc:"Restores used in last_restore_month"`
	LastRestoreMonth *int      `json:"last_restore_month" nullable:"true" doc:"Month (1-12) of the last restore"`
	RestoresLeft     int       `json:"restores_left" doc:"Restores still available this month"`
	Level            Level     `json:"level" doc:"Level for the current streak"`
	NextLevel        *Level    `json:"next_level,omitempty" doc:"Next level to reach, absent at the top"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewStrikeRecord(r *streak.Record, now time.Time) StrikeRecord {
	out := StrikeRecord{
		UserEmail:        r.UserEmail,
		DisplayName:      r.DisplayName,
		AvatarURL:        r.AvatarURL,
		StrikeName:       r.StrikeName,
		CurrentStreak:    r.CurrentStreak,
		MaxStreak:        r.MaxStreak,
		RestoreCount:     r.RestoreCount,
		LastRestoreMonth: r.LastRestoreMonth,
		RestoresLeft:     streak.RestoresRemaining(*r, now),
		Level:            NewLevel(r.Level()),
		UpdatedAt:        r.UpdatedAt,
	}
	if r.LastStrikeDate != nil {
		d := r.LastStrikeDate.UTC().Format(dateLayout)
		out.LastStrikeDate = &d
	}
	if r.RestoredOn != nil {
		d := r.RestoredOn.UTC().Format(dateLayout)
		out.RestoredOn = &d
	}
	if next, ok := streak.NextLevel(r.CurrentStreak); ok {
		l := NewLevel(next)
		out.NextLevel = &l
	}
	return out
}

func NewLevel(l streak.Level) Level {
	return Level{Threshold: l.Threshold, Name: l.Name}
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank" doc:"1-based position"`
	UserEmail     string `json:"user_email"`
	StrikeName    string `json:"strike_name"`
	DisplayName   string `json:"display_name"`
	AvatarURL     string `json:"avatar_url"`
	CurrentStreak int    `json:"current_streak"`
	MaxStreak     int    `json:"max_streak"`
	Level         Level  `json:"level"`
	IsYou         bool   `json:"is_you" doc:"True for the caller's own row"`
}

func NewLeaderboardEntries(entries []streak.Entry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			Rank:          e.Rank,
			UserEmail:     e.UserEmail,
			StrikeName:    e.StrikeName,
			DisplayName:   e.DisplayName,
			AvatarURL:     e.AvatarURL,
			CurrentStreak: e.CurrentStreak,
			MaxStreak:     e.MaxStreak,
			Level:         NewLevel(e.Level),
			IsYou:         e.IsYou,
		}
	}
	return out
}

type StrikeActionRequest struct {
	Action string `json:"action,omitempty" example:"upgrade" doc:"One of upgrade, restore, reset"`
}

type RenameStrikeRequest struct {
	StrikeName string `json:"strike_name,omitempty" example:"Nova" doc:"New streak name"`
}
