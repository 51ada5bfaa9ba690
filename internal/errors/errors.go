// Package errors provides the structured error type used throughout
// kojicron. Every fatal condition carries a kind and the process exit
// code that the entry point should terminate with.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds for categorizing failures
const (
	KindExec   = "EXEC"   // external client could not be invoked at all
	KindConfig = "CONFIG" // malformed or missing configuration
	KindQuery  = "QUERY"  // could not retrieve the tag list
	KindNoTags = "NOTAGS" // no tags matched the configured patterns
	KindAuth   = "AUTH"   // could not authenticate to the hub
	KindRegen  = "REGEN"  // one or more regenerations failed
)

// Process exit codes associated with each error kind.
const (
	ExitGeneric = 1
	ExitConfig  = 3
	ExitQuery   = 4
	ExitNoTags  = 5
	ExitAuth    = 6
	ExitRegen   = 7
)

var exitCodes = map[string]int{
	KindExec:   ExitGeneric,
	KindConfig: ExitConfig,
	KindQuery:  ExitQuery,
	KindNoTags: ExitNoTags,
	KindAuth:   ExitAuth,
	KindRegen:  ExitRegen,
}

// Error is a structured error with a kind, a human-readable message, and
// the exit code the process should terminate with. Regeneration failures
// additionally carry the failed tag and the tags that were never attempted.
type Error struct {
	Kind     string
	Message  string
	ExitCode int
	Cause    error

	// Set only for regeneration aborts.
	FailedTag string
	Remaining []string
}

// New creates a structured error of the given kind. The exit code is
// derived from the kind.
func New(kind, message string) *Error {
	return &Error{
		Kind:     kind,
		Message:  message,
		ExitCode: exitCodes[kind],
	}
}

// Newf creates a structured error of the given kind with a formatted message.
func Newf(kind, format string, args ...interface{}) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a kind and message, keeping the
// original reachable via errors.Is/errors.As.
func Wrap(err error, kind, message string) *Error {
	e := New(kind, message)
	e.Cause = err
	return e
}

// RegenAborted reports a regeneration failure that stopped the run,
// naming the failed tag and the tags that were never attempted.
func RegenAborted(tag string, remaining []string) *Error {
	e := Newf(KindRegen, "error doing regen-repo %s, remaining tags: %s",
		tag, joinOrNone(remaining))
	e.FailedTag = tag
	e.Remaining = remaining
	return e
}

// RegenFailed reports the aggregate outcome of a continue-on-failure run
// where one or more tags failed to regenerate.
func RegenFailed(failed []string) *Error {
	return Newf(KindRegen, "the following tag(s) failed to regen: %s",
		strings.Join(failed, " "))
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind checks if an error is a structured Error with the given kind.
func IsKind(err error, kind string) bool {
	if err == nil {
		return false
	}
	var kcErr *Error
	if errors.As(err, &kcErr) {
		return kcErr.Kind == kind
	}
	return false
}

// ExitCode returns the process exit code for an error: 0 for nil, the
// attached code for a structured Error, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var kcErr *Error
	if errors.As(err, &kcErr) {
		return kcErr.ExitCode
	}
	return ExitGeneric
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, " ")
}
