package pairing

import "errors"

var (
	// ErrUnknownFragment marks a file with the fragment suffix but no start or stop marker.
	ErrUnknownFragment = errors.New("fragment has no start or stop marker")
	// ErrDuplicateFragment marks a second start or stop fragment for one name.
	ErrDuplicateFragment = errors.New("duplicate fragment")
	// ErrIncompletePair marks a name missing its start or stop fragment.
	ErrIncompletePair = errors.New("incomplete pair")
)
