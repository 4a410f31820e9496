package streak

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quatton/portfolio/pkg/perr"
)

var today = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func dayPtr(t time.Time) *time.Time {
	d := Day(t)
	return &d
}

func intPtr(v int) *int { return &v }

func TestApplyUpgrade_ContinuesFromYesterday(t *testing.T) {
	r := Record{CurrentStreak: 5, MaxStreak: 5, LastStrikeDate: dayPtr(today.AddDate(0, 0, -1))}

	require.NoError(t, ApplyUpgrade(&r, today))
	assert.Equal(t, 6, r.CurrentStreak)
	assert.Equal(t, 6, r.MaxStreak)
	assert.Equal(t, Day(today), *r.LastStrikeDate)
}

func TestApplyUpgrade_SameDayRejected(t *testing.T) {
	r := Record{CurrentStreak: 4, MaxStreak: 9, LastStrikeDate: dayPtr(today)}
	before := r.Clone()

	err := ApplyUpgrade(&r, today.Add(10*time.Hour))
	require.ErrorIs(t, err, ErrAlreadyUpgradedToday)
	assert.True(t, perr.IsCode(err, perr.CodeBusinessRule))
	assert.Equal(t, before, r)
}

func TestApplyUpgrade_GapStartsOver(t *testing.T) {
	r := Record{CurrentStreak: 10, MaxStreak: 12, LastStrikeDate: dayPtr(today.AddDate(0, 0, -3))}

	require.NoError(t, ApplyUpgrade(&r, today))
	assert.Equal(t, 1, r.CurrentStreak)
	assert.Equal(t, 12, r.MaxStreak)
}

func TestApplyUpgrade_FirstEver(t *testing.T) {
	var r Record
	require.NoError(t, ApplyUpgrade(&r, today))
	assert.Equal(t, 1, r.CurrentStreak)
	assert.Equal(t, 1, r.MaxStreak)
	require.NotNil(t, r.LastStrikeDate)
}

func TestApplyUpgrade_UsesUTCDays(t *testing.T) {
	// 23:30 UTC on the 14th and 00:30 UTC on the 15th are consecutive days
	// even though they are an hour apart.
	late := time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC)
	r := Record{}
	require.NoError(t, ApplyUpgrade(&r, late))
	require.NoError(t, ApplyUpgrade(&r, late.Add(time.Hour)))
	assert.Equal(t, 2, r.CurrentStreak)
}

func TestApplyRestore_MonthlyCap(t *testing.T) {
	r := Record{MaxStreak: 8}
	for i := 1; i <= MaxRestoresPerMonth; i++ {
		require.NoError(t, ApplyRestore(&r, today))
		assert.Equal(t, i, r.RestoreCount)
	}

	before := r.Clone()
	err := ApplyRestore(&r, today)
	require.ErrorIs(t, err, ErrRestoreLimitReached)
	assert.Equal(t, "restore limit reached for this month", err.Error())
	assert.Equal(t, before, r)

	nextMonth := today.AddDate(0, 1, 0)
	require.NoError(t, ApplyRestore(&r, nextMonth))
	assert.Equal(t, 1, r.RestoreCount)
	assert.Equal(t, int(nextMonth.Month()), *r.LastRestoreMonth)
}

func TestApplyRestore_SameMonthNextYearResets(t *testing.T) {
	r := Record{RestoreCount: 3, LastRestoreMonth: intPtr(10), LastRestoreYear: intPtr(2025)}

	require.NoError(t, ApplyRestore(&r, today))
	assert.Equal(t, 1, r.RestoreCount)
	assert.Equal(t, 2026, *r.LastRestoreYear)
}

func TestApplyRestore_SetsPersonalBest(t *testing.T) {
	lastUpgrade := Day(today.AddDate(0, 0, -10))
	r := Record{CurrentStreak: 0, MaxStreak: 42, LastStrikeDate: &lastUpgrade}

	require.NoError(t, ApplyRestore(&r, today))
	assert.Equal(t, 42, r.CurrentStreak)
	assert.Equal(t, lastUpgrade, *r.LastStrikeDate, "restore must not touch the upgrade date")
	require.NotNil(t, r.RestoredOn)
	assert.Equal(t, Day(today), *r.RestoredOn)

	// The restored streak continues with today's upgrade.
	require.NoError(t, ApplyUpgrade(&r, today))
	assert.Equal(t, 43, r.CurrentStreak)
	assert.Equal(t, 43, r.MaxStreak)
	assert.Equal(t, Day(today), *r.LastStrikeDate)
}

func TestApplyRestore_ContinuedOnlyOnRestoreDay(t *testing.T) {
	r := Record{MaxStreak: 42, LastStrikeDate: dayPtr(today.AddDate(0, 0, -10))}

	require.NoError(t, ApplyRestore(&r, today))
	require.NoError(t, ApplyUpgrade(&r, today.AddDate(0, 0, 1)))
	assert.Equal(t, 1, r.CurrentStreak)
	assert.Equal(t, 42, r.MaxStreak)
}

func TestApplyRestore_WithoutAnyUpgrade(t *testing.T) {
	r := Record{}

	require.NoError(t, ApplyRestore(&r, today))
	assert.Nil(t, r.LastStrikeDate)
	assert.Zero(t, r.CurrentStreak)

	require.NoError(t, ApplyUpgrade(&r, today))
	assert.Equal(t, 1, r.CurrentStreak)
}

func TestApplyRestore_KeepsTodaysUpgrade(t *testing.T) {
	r := Record{CurrentStreak: 1, MaxStreak: 20, LastStrikeDate: dayPtr(today)}

	require.NoError(t, ApplyRestore(&r, today))
	assert.Equal(t, 20, r.CurrentStreak)
	assert.Equal(t, Day(today), *r.LastStrikeDate)
	assert.ErrorIs(t, ApplyUpgrade(&r, today), ErrAlreadyUpgradedToday)

	require.NoError(t, ApplyUpgrade(&r, today.AddDate(0, 0, 1)))
	assert.Equal(t, 21, r.CurrentStreak)
}

func TestApplyReset_ZeroesEverything(t *testing.T) {
	r := Record{
		StrikeName:       "Nova",
		CurrentStreak:    7,
		MaxStreak:        30,
		RestoreCount:     2,
		LastStrikeDate:   dayPtr(today),
		RestoredOn:       dayPtr(today),
		LastRestoreMonth: intPtr(10),
		LastRestoreYear:  intPtr(2026),
	}

	require.NoError(t, ApplyReset(&r, today))
	assert.Zero(t, r.CurrentStreak)
	assert.Zero(t, r.MaxStreak)
	assert.Zero(t, r.RestoreCount)
	assert.Nil(t, r.LastStrikeDate)
	assert.Nil(t, r.RestoredOn)
	assert.Nil(t, r.LastRestoreMonth)
	assert.Nil(t, r.LastRestoreYear)
	assert.Equal(t, "Nova", r.StrikeName)
}

func TestApplyRename(t *testing.T) {
	r := Record{StrikeName: "old"}

	err := ApplyRename(&r, "   ")
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.CodeValidation))
	assert.Contains(t, err.Error(), "strike_name")
	assert.Equal(t, "old", r.StrikeName)

	require.NoError(t, ApplyRename(&r, " Nova "))
	assert.Equal(t, "Nova", r.StrikeName)

	err = ApplyRename(&r, strings.Repeat("é", MaxStrikeNameLength+1))
	assert.True(t, errors.Is(err, ErrStrikeNameTooLong))
	require.NoError(t, ApplyRename(&r, strings.Repeat("é", MaxStrikeNameLength)))
}

func TestParseAction(t *testing.T) {
	for _, in := range []string{"upgrade", "Restore", " reset "} {
		_, err := ParseAction(in)
		assert.NoError(t, err, in)
	}

	_, err := ParseAction("teleport")
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.CodeValidation))
	assert.Contains(t, err.Error(), "teleport")
}

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard("")
	require.NoError(t, err)
	assert.Equal(t, BoardCurrent, b)

	b, err = ParseBoard("MAX")
	require.NoError(t, err)
	assert.Equal(t, BoardMax, b)

	_, err = ParseBoard("weekly")
	assert.True(t, perr.IsCode(err, perr.CodeValidation))
}

func TestRestoresRemaining(t *testing.T) {
	assert.Equal(t, MaxRestoresPerMonth, RestoresRemaining(Record{}, today))

	r := Record{}
	require.NoError(t, ApplyRestore(&r, today))
	require.NoError(t, ApplyRestore(&r, today))
	assert.Equal(t, 1, RestoresRemaining(r, today))
	assert.Equal(t, MaxRestoresPerMonth, RestoresRemaining(r, today.AddDate(0, 1, 0)))
}
