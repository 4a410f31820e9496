package streak

import "fmt"

// Entry is one ranked leaderboard row.
type Entry struct {
	Rank          int    `json:"rank"`
	UserEmail     string `json:"user_email"`
	StrikeName    string `json:"strike_name"`
	DisplayName   string `json:"display_name"`
	AvatarURL     string `json:"avatar_url"`
	CurrentStreak int    `json:"current_streak"`
	MaxStreak     int    `json:"max_streak"`
	Level         Level  `json:"level"`
	IsYou         bool   `json:"is_you"`
}

// BuildLeaderboard ranks records for board starting at 1. Rows without a
// display name get a positional placeholder. The row matching caller shows
// the caller's session name and avatar instead of the stored ones.
func BuildLeaderboard(records []Record, caller Identity, board Board) []Entry {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	SortForBoard(sorted, board)

	caller = caller.normalized()
	out := make([]Entry, 0, len(sorted))
	for i, r := range sorted {
		e := Entry{
			Rank:          i + 1,
			UserEmail:     r.UserEmail,
			StrikeName:    r.StrikeName,
			DisplayName:   r.DisplayName,
			AvatarURL:     r.AvatarURL,
			CurrentStreak: r.CurrentStreak,
			MaxStreak:     r.MaxStreak,
			Level:         r.Level(),
		}
		if caller.Email != "" && r.UserEmail == caller.Email {
			e.IsYou = true
			if caller.Name != "" {
				e.DisplayName = caller.Name
			}
			if caller.AvatarURL != "" {
				e.AvatarURL = caller.AvatarURL
			}
		}
		if e.DisplayName == "" {
			e.DisplayName = fmt.Sprintf("Player #%d", e.Rank)
		}
		out = append(out, e)
	}
	return out
}
