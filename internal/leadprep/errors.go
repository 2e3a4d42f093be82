package leadprep

import "errors"

// ErrInvalidInput marks user-correctable input failures. It is the only error
// the analyzer surfaces to callers; everything else degrades to the next tier.
var ErrInvalidInput = errors.New("invalid company input")
