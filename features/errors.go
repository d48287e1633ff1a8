package features

import "errors"

var (
	// ErrDegenerateInput marks text without usable content for a feature.
	// It is handled internally by substituting the documented fallback.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrMissingRoot marks a sentence without exactly one ROOT token.
	ErrMissingRoot = errors.New("sentence has no unique root")
	// ErrRootNotVerb marks a sentence whose root is not a verb.
	ErrRootNotVerb = errors.New("sentence root is not a verb")
)
