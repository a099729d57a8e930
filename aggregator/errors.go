package aggregator

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode identifies the class of failure a state-machine operation
// returned, mirroring blockdag.ErrorCode/RuleError: a stable, inspectable
// tag plus a human-readable description.
type ErrorCode int

const (
	// ErrCodeSpeculativeInvalidation means a recorded DeltaHistory could
	// not be validated against a materialized base value, or a resolver
	// read returned an error. (A read that finds the aggregator deleted
	// carries ErrCodeDeletedAggregator instead.) The transaction should be
	// re-executed; this is not a bug.
	ErrCodeSpeculativeInvalidation ErrorCode = iota

	// ErrCodeInvariantViolation means a precondition of the state machine
	// itself was violated (e.g. reading last-committed with a non-empty
	// delta). The transaction is aborted, not retried.
	ErrCodeInvariantViolation

	// ErrCodeDeletedAggregator means a resolver read found the aggregator
	// absent. It is surfaced as a speculative invalidation.
	ErrCodeDeletedAggregator
)

var errorCodeStrings = map[ErrorCode]string{
	ErrCodeSpeculativeInvalidation: "ErrCodeSpeculativeInvalidation",
	ErrCodeInvariantViolation:      "ErrCodeInvariantViolation",
	ErrCodeDeletedAggregator:       "ErrCodeDeletedAggregator",
}

// String returns the ErrorCode's name, or a fallback for unknown codes.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// AggregatorError is the error type returned by every core operation that
// can fail. Description carries the human-readable detail; Code is the
// stable tag callers can branch on to decide retry vs. abort.
type AggregatorError struct {
	Code        ErrorCode
	Description string
}

// Error implements the error interface.
func (e *AggregatorError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Description
}

// IsSpeculativeInvalidation reports whether err is an AggregatorError whose
// code indicates the transaction should be re-executed.
func IsSpeculativeInvalidation(err error) bool {
	var aggErr *AggregatorError
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == ErrCodeSpeculativeInvalidation || aggErr.Code == ErrCodeDeletedAggregator
}

// IsInvariantViolation reports whether err is an AggregatorError whose code
// indicates a fatal, non-retryable defect in the calling code.
func IsInvariantViolation(err error) bool {
	var aggErr *AggregatorError
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == ErrCodeInvariantViolation
}

// speculativeInvalidationError builds a re-executable error.
func speculativeInvalidationError(format string, args ...interface{}) error {
	return errors.WithStack(&AggregatorError{
		Code:        ErrCodeSpeculativeInvalidation,
		Description: fmt.Sprintf(format, args...),
	})
}

// deletedAggregatorError builds a re-executable error for a resolver read
// against a deleted aggregator.
func deletedAggregatorError(id AggregatorVersionedID) error {
	return errors.WithStack(&AggregatorError{
		Code:        ErrCodeDeletedAggregator,
		Description: fmt.Sprintf("could not read from deleted aggregator at %s", id),
	})
}

// codeInvariantError builds a fatal, non-retryable error.
func codeInvariantError(format string, args ...interface{}) error {
	return errors.WithStack(&AggregatorError{
		Code:        ErrCodeInvariantViolation,
		Description: fmt.Sprintf(format, args...),
	})
}

// VMExtensionStatus is the stable status string the VM boundary wraps any
// error from this package in, per the "extension error" taxonomy.
const VMExtensionStatus = "VM_EXTENSION_ERROR"

// WrapForVM annotates err, if non-nil, with the stable VM_EXTENSION_ERROR
// status expected at the module boundary.
func WrapForVM(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, VMExtensionStatus)
}
