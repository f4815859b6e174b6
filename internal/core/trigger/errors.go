// Package trigger defines domain-specific errors
package trigger

import "errors"

var (
	ErrNilTrigger         = errors.New("trigger cannot be nil")
	ErrInvalidTriggerID   = errors.New("invalid trigger ID")
	ErrInvalidTriggerName = errors.New("invalid trigger name")
	ErrTriggerNotFound    = errors.New("trigger not found")
	ErrInvalidLimit       = errors.New("limit cannot be negative")
	ErrInvalidOffset      = errors.New("offset cannot be negative")
)
