package changeop

import (
	"errors"
	"fmt"
)

// Sentinel error kinds named in spec.md §7. Callers use errors.Is to
// classify a returned error without string-matching its message.
var (
	// ErrTransport marks a completePrompt transport failure (spec.md §4.3,
	// §7). On the first call this is surfaced to transform.Page's caller as
	// Completed:false; on the repair call it is swallowed.
	ErrTransport = errors.New("transport error")

	// ErrParse marks a change-list parse failure (spec.md §4.4, §7).
	ErrParse = errors.New("parse error")

	// ErrUnknownOp marks an unrecognized op kind (spec.md §4.5: "fatal").
	ErrUnknownOp = errors.New("unknown op")

	// ErrUnknownPosition marks an unrecognized insert position.
	ErrUnknownPosition = errors.New("unknown position")
)

// Wrap annotates err with one of the sentinel kinds above so a later
// errors.Is(err, changeop.ErrParse) (etc.) check succeeds, while keeping the
// original message and %w chain intact.
func Wrap(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
