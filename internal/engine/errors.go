package engine

import "errors"

// ErrInvalidKey is returned when a reversal needs a substitution key that the
// manifest does not carry, or carries in an unusable form.
var ErrInvalidKey = errors.New("substitution key missing or not usable")
