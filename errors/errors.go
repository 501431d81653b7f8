package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeUser       ErrorType = "USER"
	ErrorTypeSystem     ErrorType = "SYSTEM"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo    ErrorSeverity = "INFO"
	SeverityWarning ErrorSeverity = "WARNING"
	SeverityError   ErrorSeverity = "ERROR"
)

// Validation codes reported for rejected pumping inputs, in check order.
const (
	CodeInvalidPumpingLength   = "INVALID_PUMPING_LENGTH"
	CodeMissingString          = "MISSING_STRING"
	CodeMissingSplitComponent  = "MISSING_SPLIT_COMPONENT"
	CodeInvalidPumpingFactor   = "INVALID_PUMPING_FACTOR"
	CodeSplitMismatch          = "SPLIT_MISMATCH"
	CodeEmptyPumpedSegment     = "EMPTY_PUMPED_SEGMENT"
	CodeXYExceedsPumpingLength = "XY_EXCEEDS_PUMPING_LENGTH"
)

// User and system codes raised by the terminal, batch runner and config loader.
const (
	CodeUnknownCommand    = "UNKNOWN_COMMAND"
	CodeUnknownField      = "UNKNOWN_FIELD"
	CodeInvalidSyntax     = "INVALID_SYNTAX"
	CodeUnknownFormat     = "UNKNOWN_FORMAT"
	CodeConfigLoad        = "CONFIG_LOAD_FAILED"
	CodeConfigSave        = "CONFIG_SAVE_FAILED"
	CodeBatchLoad         = "BATCH_LOAD_FAILED"
	CodeReadlineInit      = "READLINE_INIT_FAILED"
	CodeRenderFailed      = "RENDER_FAILED"
	CodeOutputWrite       = "OUTPUT_WRITE_FAILED"
	CodeDuplicateRenderer = "DUPLICATE_RENDERER"
)

// Error is a structured error carrying a code, a user-facing message and
// optional context values used to render it.
type Error struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Severity  ErrorSeverity          `json:"severity"`
	Type      ErrorType              `json:"type"`
	Cause     error                  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	var builder strings.Builder

	// Format: [TYPE][CODE] message
	builder.WriteString(fmt.Sprintf("[%s][%s] %s", e.Type, e.Code, e.Message))

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		builder.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		builder.WriteString(")")
	}

	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}

	return builder.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *Error) Is(target error) bool {
	if other, ok := target.(*Error); ok {
		return e.Code == other.Code && e.Type == other.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Wrap wraps another error
func (e *Error) Wrap(err error) *Error {
	e.Cause = err
	return e
}

func newError(errorType ErrorType, severity ErrorSeverity, code, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Severity:  severity,
		Type:      errorType,
		Context:   make(map[string]interface{}),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(code, message string) *Error {
	return newError(ErrorTypeValidation, SeverityWarning, code, message)
}

// NewUserError creates a new user error
func NewUserError(code, message string) *Error {
	return newError(ErrorTypeUser, SeverityInfo, code, message)
}

// NewSystemError creates a new system error
func NewSystemError(code, message string) *Error {
	return newError(ErrorTypeSystem, SeverityError, code, message)
}

// WrapError wraps an existing error into a system Error
func WrapError(err error, code, message string) *Error {
	return NewSystemError(code, message).Wrap(err)
}

// AsError extracts an *Error from err's chain
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err's chain contains an *Error with the given code
func HasCode(err error, code string) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none
func CodeOf(err error) string {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// MessageOf returns the user-facing message for err. Structured errors yield
// their Message alone; other errors fall back to Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := AsError(err); ok {
		return e.Message
	}
	return err.Error()
}
