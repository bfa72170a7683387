package repository

import "errors"

// ErrSoudaAlreadyBilled is returned when a bill tries to claim a souda that
// another bill of the same type already holds
var ErrSoudaAlreadyBilled = errors.New("souda already billed")
