// Package errors provides centralized error definitions and error handling utilities
// for panelkit. It defines the sentinel errors raised by the component registry and
// its collaborators, typed errors carrying namespace/route context, and helpers for
// classifying errors before they are shown in the TUI or printed by the CLI.
//
// # Error Types
//
// Domain-specific errors:
//   - ComponentError: construction or lifecycle failures of a panel component
//
// Semantic errors:
//   - NotFoundError: route, command or component not found
//   - AlreadyExistsError: component namespace already mounted
//   - ValidationError: invalid namespace, definition or configuration input
//
// # Usage
//
//	// Sentinel check
//	if errors.Is(err, errors.ErrMissingManager) { ... }
//
//	// Typed check
//	var notFound *errors.NotFoundError
//	if errors.As(err, &notFound) { ... }
//
//	// Classification
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Component-related sentinel errors
var (
	// ErrMissingManager indicates a component was constructed without a manager.
	ErrMissingManager = New("manager is required")
	// ErrNotImplemented indicates a component definition did not override its namespace.
	ErrNotImplemented = New("namespace must be overridden")
	// ErrInvalidNamespace indicates a malformed slash-delimited namespace.
	ErrInvalidNamespace = New("invalid namespace")
	// ErrComponentExists indicates a namespace is already mounted on the host.
	ErrComponentExists = New("component already mounted")
	// ErrHostClosed indicates the host was shut down.
	ErrHostClosed = New("host is shut down")
)

// Dispatch-related sentinel errors
var (
	// ErrRouteNotFound indicates navigation to a route nobody registered.
	ErrRouteNotFound = New("route not found")
	// ErrCommandNotFound indicates a command nobody registered.
	ErrCommandNotFound = New("command not found")
	// ErrActionCycle indicates declared actions that keep triggering each other.
	ErrActionCycle = New("action cycle")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// PanelError is the base interface for all panelkit errors.
type PanelError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ComponentError represents errors raised while constructing or driving a
// panel component.
//
// Example:
//
//	err := errors.NewComponentError("cannot construct component", errors.ErrMissingManager)
//	err = err.WithNamespace("panel/general")
//	fmt.Println(err) // "component error [namespace=panel/general]: cannot construct component: manager is required"
type ComponentError struct {
	baseError
	Namespace string
	Tab       string
}

// NewComponentError creates a new ComponentError.
func NewComponentError(message string, cause error) *ComponentError {
	return &ComponentError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityCritical,
			userFacing: false,
		},
	}
}

// WithNamespace adds the component namespace to the error context.
func (e *ComponentError) WithNamespace(ns string) *ComponentError {
	e.Namespace = ns
	return e
}

// WithTab adds a tab id to the error context.
func (e *ComponentError) WithTab(tab string) *ComponentError {
	e.Tab = tab
	return e
}

// WithSeverity sets the error severity.
func (e *ComponentError) WithSeverity(s Severity) *ComponentError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *ComponentError) Error() string {
	var parts []string
	if e.Namespace != "" {
		parts = append(parts, fmt.Sprintf("namespace=%s", e.Namespace))
	}
	if e.Tab != "" {
		parts = append(parts, fmt.Sprintf("tab=%s", e.Tab))
	}

	prefix := "component error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("component error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ComponentError) Is(target error) bool {
	if _, ok := target.(*ComponentError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("route", "panel/general/style")
//	fmt.Println(err) // "route 'panel/general/style' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
	Suggestions  []string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// WithSuggestions attaches "did you mean" candidates.
func (e *NotFoundError) WithSuggestions(s []string) *NotFoundError {
	e.Suggestions = s
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
//
// Example:
//
//	err := errors.NewAlreadyExistsError("component", "panel/general")
//	fmt.Println(err) // "component 'panel/general' already exists"
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' already exists", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *AlreadyExistsError) WithCause(cause error) *AlreadyExistsError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *AlreadyExistsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' already exists: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("namespace has an empty segment")
//	err = err.WithField("namespace").WithValue("panel//x")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
// The TUI status line shows user-facing errors verbatim and a generic message
// for everything else.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var panelErr PanelError
	if As(err, &panelErr) {
		return panelErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement PanelError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var panelErr PanelError
	if As(err, &panelErr) {
		return panelErr.Severity()
	}
	return SeverityError
}

// IsSemanticError returns true if the error is a semantic error
// (NotFoundError, AlreadyExistsError or ValidationError).
func IsSemanticError(err error) bool {
	if err == nil {
		return false
	}

	var notFound *NotFoundError
	var alreadyExists *AlreadyExistsError
	var validation *ValidationError

	return As(err, &notFound) || As(err, &alreadyExists) || As(err, &validation)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this returns nil for a nil error.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
