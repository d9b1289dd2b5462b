package engine

import "errors"

var (
	// ErrNoPuzzles is returned by New when the config names nothing to solve.
	ErrNoPuzzles = errors.New("no puzzles configured")

	// ErrUnknownFormat is returned by New for an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrVerification is returned when a rendered expression does not
	// reproduce its reported value from the puzzle's operands.
	ErrVerification = errors.New("expression failed verification")
)
