package repository

import (
	"errors"
)

// ErrNotFound is returned by repositories when the requested record does not
// exist. Callers use errors.Is to distinguish "absent" from infrastructure
// failures.
var ErrNotFound = errors.New("record not found")
