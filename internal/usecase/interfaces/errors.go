package interfaces

import "errors"

// ErrAlreadyExists is returned by keyed "create if absent" writes when the
// key is already taken. Callers treat it as an idempotency signal, not a fault.
var ErrAlreadyExists = errors.New("record already exists")
