package streak

import (
	"strings"

	"github.com/quatton/portfolio/pkg/perr"
)

// Action is one of the POST /strike verbs.
type Action string

const (
	ActionUpgrade Action = "upgrade"
	ActionRestore Action = "restore"
	ActionReset   Action = "reset"
)

// Actions lists every accepted action keyword.
func Actions() []Action {
	return []Action{ActionUpgrade, ActionRestore, ActionReset}
}

// ParseAction accepts exactly the known keywords (case-insensitive).
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionUpgrade, ActionRestore, ActionReset:
		return a, nil
	}
	return "", perr.Newf(perr.CodeValidation, "action: unknown value %q (expected upgrade, restore or reset)", s)
}

// Board selects the counter the leaderboard ranks by.
type Board string

const (
	BoardCurrent Board = "current"
	BoardMax     Board = "max"
)

// ParseBoard defaults to BoardCurrent when s is empty.
func ParseBoard(s string) (Board, error) {
	switch b := Board(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BoardCurrent, nil
	case BoardCurrent, BoardMax:
		return b, nil
	}
	return "", perr.Newf(perr.CodeValidation, "by: unknown value %q (expected current or max)", s)
}

// score is the counter this board ranks by.
func (b Board) score(r Record) int {
	if b == BoardMax {
		return r.MaxStreak
	}
	return r.CurrentStreak
}
