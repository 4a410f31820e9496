package streak

import (
	"errors"
	"fmt"

	"github.com/quatton/portfolio/pkg/perr"
)

var (
	ErrUnauthenticated      = perr.New(perr.CodeUnauthorized, errors.New("authentication required"))
	ErrAlreadyUpgradedToday = perr.New(perr.CodeBusinessRule, errors.New("already upgraded today"))
	ErrRestoreLimitReached  = perr.New(perr.CodeBusinessRule, errors.New("restore limit reached for this month"))
	ErrEmptyStrikeName      = perr.New(perr.CodeValidation, errors.New("strike_name must not be empty"))
	ErrStrikeNameTooLong    = perr.New(perr.CodeValidation, fmt.Errorf("strike_name must be at most %d characters", MaxStrikeNameLength))

	// ErrRecordNotFound is returned by Store.Update when no row exists for
	// the email. The Engine creates the row and retries.
	ErrRecordNotFound = errors.New("strike record not found")
)
