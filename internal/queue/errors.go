package queue

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Do after Close has been called.
var ErrClosed = errors.New("queue: closed")

type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("queue: task panicked: %v", e.value)
}
