package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks input the service refuses before any write. Handlers
// answer it with a 400 and a generic message.
var ErrValidation = errors.New("validation failed")

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
