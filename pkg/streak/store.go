package streak

import (
	"context"
	"sort"
)

// Store persists one Record per user email.
type Store interface {
	// Ensure inserts seed when no record exists for seed.UserEmail. On an
	// existing record it refreshes DisplayName, AvatarURL and UpdatedAt only.
	// It returns the stored record.
	Ensure(ctx context.Context, seed Record) (*Record, error)

	// Update runs fn against the stored record while holding an exclusive
	// lock on it and persists the result. If fn returns an error nothing is
	// written and that error is returned unchanged. Returns
	// ErrRecordNotFound when no record exists.
	Update(ctx context.Context, email string, fn func(*Record) error) (*Record, error)

	// List returns every record ordered for the board: counter descending,
	// then user email ascending.
	List(ctx context.Context, board Board) ([]Record, error)
}

// SortForBoard orders records in leaderboard order in place.
func SortForBoard(records []Record, board Board) {
	sort.SliceStable(records, func(i, j int) bool {
		si, sj := board.score(records[i]), board.score(records[j])
		if si != sj {
			return si > sj
		}
		return records[i].UserEmail < records[j].UserEmail
	})
}
