package scan

import "errors"

var (
	// ErrOneshotNotAlone marks a one-shot sample that shares its directory.
	ErrOneshotNotAlone = errors.New("one-shot sample is not alone in its directory")
	// ErrMalformedName marks a sample stem that does not split into five fields.
	ErrMalformedName = errors.New("sample name must have five whitespace-separated fields")
)
