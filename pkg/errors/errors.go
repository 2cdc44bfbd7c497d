// Package errors provides the structured error types used across neighfit.
// Every validation failure carries the offending value so that callers can
// report it without re-deriving context, and every constructor attaches a
// stack trace via cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// NotFittedError is returned when Predict or Transform is called on an
// estimator whose Fit has not completed.
type NotFittedError struct {
	EstimatorName string
	Method        string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("neighfit: %s: not fitted yet. Call Fit() before %s()", e.EstimatorName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("estimator", e.EstimatorName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(estimator, method string) error {
	err := &NotFittedError{EstimatorName: estimator, Method: method}
	return errors.WithStack(err)
}

// SchemaMismatchError is returned when a row handed to Transform does not
// match the schema learned during Fit: a known column is missing, a value has
// the wrong kind, or a categorical value carries a level never seen in
// training.
type SchemaMismatchError struct {
	Op     string
	Column string
	Level  string // unseen categorical level, empty for column problems
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	if e.Level != "" {
		return fmt.Sprintf("neighfit: %s: column %q: unseen level %q: %s", e.Op, e.Column, e.Level, e.Reason)
	}
	return fmt.Sprintf("neighfit: %s: column %q: %s", e.Op, e.Column, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *SchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("level", e.Level).
		Str("reason", e.Reason).
		Str("type", "SchemaMismatchError")
}

// NewSchemaMismatchError creates a SchemaMismatchError with a stack trace.
func NewSchemaMismatchError(op, column, level, reason string) error {
	err := &SchemaMismatchError{Op: op, Column: column, Level: level, Reason: reason}
	return errors.WithStack(err)
}

// HyperparameterError is returned when a hyperparameter value lies outside
// its valid range, e.g. k < 1 or k larger than the training set.
type HyperparameterError struct {
	Name   string
	Value  int
	Reason string
}

func (e *HyperparameterError) Error() string {
	return fmt.Sprintf("neighfit: invalid hyperparameter %s=%d: %s", e.Name, e.Value, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *HyperparameterError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Name).
		Int("value", e.Value).
		Str("reason", e.Reason).
		Str("type", "HyperparameterError")
}

// NewHyperparameterError creates a HyperparameterError with a stack trace.
func NewHyperparameterError(name string, value int, reason string) error {
	err := &HyperparameterError{Name: name, Value: value, Reason: reason}
	return errors.WithStack(err)
}

// ProportionError is returned when a train proportion is not strictly
// between 0 and 1.
type ProportionError struct {
	Op    string
	Value float64
}

func (e *ProportionError) Error() string {
	return fmt.Sprintf("neighfit: %s: train proportion must be in (0, 1), got %g", e.Op, e.Value)
}

// NewProportionError creates a ProportionError with a stack trace.
func NewProportionError(op string, value float64) error {
	err := &ProportionError{Op: op, Value: value}
	return errors.WithStack(err)
}

// InsufficientDataError is returned when a split would leave one side of the
// partition empty.
type InsufficientDataError struct {
	Op      string
	Rows    int
	Message string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("neighfit: %s: insufficient data (%d rows): %s", e.Op, e.Rows, e.Message)
}

// NewInsufficientDataError creates an InsufficientDataError with a stack trace.
func NewInsufficientDataError(op string, rows int, message string) error {
	err := &InsufficientDataError{Op: op, Rows: rows, Message: message}
	return errors.WithStack(err)
}

// FoldCountError is returned when a cross-validation fold count is below 2
// or exceeds the number of rows.
type FoldCountError struct {
	Folds int
	Rows  int
}

func (e *FoldCountError) Error() string {
	return fmt.Sprintf("neighfit: fold count must satisfy 2 <= v <= rows, got v=%d with %d rows", e.Folds, e.Rows)
}

// NewFoldCountError creates a FoldCountError with a stack trace.
func NewFoldCountError(folds, rows int) error {
	err := &FoldCountError{Folds: folds, Rows: rows}
	return errors.WithStack(err)
}

// EmptyInputError is returned when a metric receives an empty sequence.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("neighfit: %s: empty input", e.Op)
}

// NewEmptyInputError creates an EmptyInputError with a stack trace.
func NewEmptyInputError(op string) error {
	return errors.WithStack(&EmptyInputError{Op: op})
}

// LengthMismatchError is returned when paired sequences differ in length.
type LengthMismatchError struct {
	Op       string
	Expected int
	Got      int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("neighfit: %s: length mismatch: expected %d, got %d", e.Op, e.Expected, e.Got)
}

// NewLengthMismatchError creates a LengthMismatchError with a stack trace.
func NewLengthMismatchError(op string, expected, got int) error {
	err := &LengthMismatchError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// UnknownLabelError is returned when a confusion matrix encounters a label
// outside its fixed label set. Silent bucketing would hide model errors, so
// the matrix rejects instead.
type UnknownLabelError struct {
	Op    string
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("neighfit: %s: label %q not in the fixed label set", e.Op, e.Label)
}

// NewUnknownLabelError creates an UnknownLabelError with a stack trace.
func NewUnknownLabelError(op, label string) error {
	return errors.WithStack(&UnknownLabelError{Op: op, Label: label})
}

// DimensionError is returned when a matrix has the wrong number of rows or
// columns for the operation.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("neighfit: %s: dimension mismatch on axis %d (%s): expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError is returned for argument values that are malformed in ways not
// covered by a more specific type.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("neighfit: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}
