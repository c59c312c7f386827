package rans

import "errors"

// The engine surfaces three error kinds. Parse errors are terminal and
// reported only by Compile (as *parser.ParseError); the two sentinels
// below are recoverable query errors: the instance is unchanged and the
// caller may retry with different input.
var (
	// ErrNotAcceptable is returned by Val when the text is not in the
	// language.
	ErrNotAcceptable = errors.New("rans: text is not acceptable")

	// ErrOutOfRange is returned by Rep when no string of the given rank
	// exists: the value is negative, or the language is finite and
	// smaller than the value.
	ErrOutOfRange = errors.New("rans: corresponding text does not exist")
)
