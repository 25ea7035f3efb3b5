// Package errors provides the typed error kinds used across the trading
// pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// KeyNotFoundError is returned by a Service's GetData when the requested key
// is absent. Structural: it surfaces to the caller rather than being
// swallowed.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %s", e.Key)
}

// ParseError represents a malformed input line. Transient: the offending
// line is skipped and ingestion continues.
type ParseError struct {
	Source string
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %q: %s", e.Source, e.Line, e.Reason)
}

// MissingProductError represents a reference-data lookup failure for an
// incoming product id. Transient: the record is dropped.
type MissingProductError struct {
	ProductId string
}

func (e *MissingProductError) Error() string {
	return fmt.Sprintf("missing product: %s", e.ProductId)
}

// IOFailureError represents a failure to open an input or output file.
// Transient to the pipeline as a whole: the affected sink is disabled for
// the run but the pipeline continues.
type IOFailureError struct {
	Path string
	Err  error
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("io failure on %s: %v", e.Path, e.Err)
}

func (e *IOFailureError) Unwrap() error {
	return e.Err
}

// DanglingChildOrderError represents a child ExecutionOrder whose parent is
// not present in the store. Transient: the child order is dropped.
type DanglingChildOrderError struct {
	OrderId       string
	ParentOrderId string
}

func (e *DanglingChildOrderError) Error() string {
	return fmt.Sprintf("dangling child order %s: parent %s not found", e.OrderId, e.ParentOrderId)
}

// EmptyBookError represents AlgoExecutionService seeing a book with one or
// both sides empty. No-op: logged, not an abort.
type EmptyBookError struct {
	ProductId string
}

func (e *EmptyBookError) Error() string {
	return fmt.Sprintf("empty book for %s", e.ProductId)
}
