package utils

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"

	"golang-market-sentiment/pkg/logger"
)

// GoSafe runs fn in a goroutine and recovers from panics.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic in goroutine: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether ctx is still live, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Stopping work, context is done", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}

// Recover converts a panic into an error; use as `defer utils.Recover(&err)`.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("recovered from panic: %v", r)
	}
}
