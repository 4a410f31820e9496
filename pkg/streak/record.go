// Package streak implements the Strike Game: a per-user daily streak with
// upgrade, restore, reset and rename actions, plus the leaderboard and level
// table derived from it.
//
// All state transitions are pure functions over Record; the Engine runs them
// inside Store.Update, which serializes writers per user.
package streak

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identity is the caller as resolved by the session provider. It is passed
// explicitly into every Engine call.
type Identity struct {
	Email     string
	Name      string
	AvatarURL string
}

func (id Identity) normalized() Identity {
	id.Email = strings.ToLower(strings.TrimSpace(id.Email))
	id.Name = strings.TrimSpace(id.Name)
	id.AvatarURL = strings.TrimSpace(id.AvatarURL)
	return id
}

// Record is one user's streak state, keyed by UserEmail.
type Record struct {
	ID               uuid.UUID  `json:"id"`
	UserEmail        string     `json:"user_email"`
	DisplayName      string     `json:"display_name"`
	AvatarURL        string     `json:"avatar_url"`
	StrikeName       string     `json:"strike_name"`
	CurrentStreak    int        `json:"current_streak"`
	MaxStreak        int        `json:"max_streak"`
	LastStrikeDate   *time.Time `json:"last_strike_date"`
	RestoredOn       *time.Time `json:"restored_on"`
	RestoreCount     int        `json:"restore_count"`
	LastRestoreMonth *int       `json:"last_restore_month"`
	LastRestoreYear  *int       `json:"last_restore_year"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Clone returns a deep copy so callers never share pointer fields.
func (r Record) Clone() Record {
	if r.LastStrikeDate != nil {
		d := *r.LastStrikeDate
		r.LastStrikeDate = &d
	}
	if r.RestoredOn != nil {
		d := *r.RestoredOn
		r.RestoredOn = &d
	}
	if r.LastRestoreMonth != nil {
		m := *r.LastRestoreMonth
		r.LastRestoreMonth = &m
	}
	if r.LastRestoreYear != nil {
		y := *r.LastRestoreYear
		r.LastRestoreYear = &y
	}
	return r
}

// Level returns the rank derived from the current streak.
func (r Record) Level() Level {
	return LevelFor(r.CurrentStreak)
}

// newRecord builds the all-zero record created on first access.
func newRecord(id Identity, now time.Time) Record {
	return Record{
		UserEmail:   id.Email,
		DisplayName: id.Name,
		AvatarURL:   id.AvatarURL,
		StrikeName:  defaultStrikeName(id),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func defaultStrikeName(id Identity) string {
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name, _, _ = strings.Cut(id.Email, "@")
	}
	if name == "" {
		name = "Strike"
	}
	return truncateRunes(name, MaxStrikeNameLength)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole UTC calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
