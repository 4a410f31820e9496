package streak

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxRestoresPerMonth bounds restores within one calendar month.
	MaxRestoresPerMonth = 3
	// MaxStrikeNameLength is measured in runes.
	MaxStrikeNameLength = 40
)

// ApplyUpgrade records today's upgrade. A gap of exactly one day extends the
// streak; a longer gap (or no previous upgrade) starts over at 1. Upgrading
// twice on the same day is rejected and leaves r untouched.
func ApplyUpgrade(r *Record, now time.Time) error {
	today := Day(now)
	if r.LastStrikeDate != nil && DaysBetween(*r.LastStrikeDate, today) <= 0 {
		return ErrAlreadyUpgradedToday
	}
	next := 1
	if alive := r.aliveThrough(); alive != nil && DaysBetween(*alive, today) == 1 {
		next = r.CurrentStreak + 1
	}
	r.CurrentStreak = next
	r.MaxStreak = max(r.MaxStreak, next)
	r.LastStrikeDate = &today
	return nil
}

// ApplyRestore brings the current streak back to the best one. At most
// MaxRestoresPerMonth restores are allowed per calendar month; the counter
// starts over in a new month. The restore day is kept in RestoredOn so the
// restored streak can be continued by an upgrade on that day.
func ApplyRestore(r *Record, now time.Time) error {
	now = now.UTC()
	year, month := now.Year(), int(now.Month())

	count := 1
	if sameRestoreMonth(r, year, month) {
		if r.RestoreCount >= MaxRestoresPerMonth {
			return ErrRestoreLimitReached
		}
		count = r.RestoreCount + 1
	}

	r.RestoreCount = count
	r.LastRestoreMonth = &month
	r.LastRestoreYear = &year
	r.CurrentStreak = r.MaxStreak
	day := Day(now)
	r.RestoredOn = &day
	return nil
}

// aliveThrough is the last day the current streak counts as upgraded: the
// last upgrade, or the day before a later restore.
func (r *Record) aliveThrough() *time.Time {
	alive := r.LastStrikeDate
	if r.RestoredOn != nil {
		eve := r.RestoredOn.AddDate(0, 0, -1)
		if alive == nil || alive.Before(eve) {
			alive = &eve
		}
	}
	return alive
}

// Rows written before the year column existed only carry a month.
func sameRestoreMonth(r *Record, year, month int) bool {
	if r.LastRestoreMonth == nil || *r.LastRestoreMonth != month {
		return false
	}
	return r.LastRestoreYear == nil || *r.LastRestoreYear == year
}

// ApplyReset zeroes every counter and clears the dates. Always succeeds.
func ApplyReset(r *Record, _ time.Time) error {
	r.CurrentStreak = 0
	r.MaxStreak = 0
	r.RestoreCount = 0
	r.LastStrikeDate = nil
	r.RestoredOn = nil
	r.LastRestoreMonth = nil
	r.LastRestoreYear = nil
	return nil
}

// ApplyRename sets the strike name after trimming whitespace.
func ApplyRename(r *Record, name string) error {
	name, err := ValidateStrikeName(name)
	if err != nil {
		return err
	}
	r.StrikeName = name
	return nil
}

// ValidateStrikeName trims name and checks it is non-empty and short enough.
func ValidateStrikeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyStrikeName
	}
	if utf8.RuneCountInString(name) > MaxStrikeNameLength {
		return "", ErrStrikeNameTooLong
	}
	return name, nil
}

// transition returns the pure function behind an action.
func transition(a Action) func(*Record, time.Time) error {
	switch a {
	case ActionUpgrade:
		return ApplyUpgrade
	case ActionRestore:
		return ApplyRestore
	case ActionReset:
		return ApplyReset
	}
	return nil
}

// RestoresRemaining reports how many restores r may still use in now's month.
func RestoresRemaining(r Record, now time.Time) int {
	now = now.UTC()
	if !sameRestoreMonth(&r, now.Year(), int(now.Month())) {
		return MaxRestoresPerMonth
	}
	return max(0, MaxRestoresPerMonth-r.RestoreCount)
}
