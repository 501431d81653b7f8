package errors

import (
	"context"
	"fmt"
)

// RecoveryAction represents the type of recovery action
type RecoveryAction string

const (
	// RecoveryActionLog reports the error and keeps the session going.
	RecoveryActionLog RecoveryAction = "LOG"
	// RecoveryActionAbort reports the error and ends the session.
	RecoveryActionAbort RecoveryAction = "ABORT"
)

// RecoveryStrategy represents a strategy for recovering from an error
type RecoveryStrategy struct {
	Action  RecoveryAction `json:"action"`
	Message string         `json:"message"`
}

// ErrorHandler defines the interface for handling errors
type ErrorHandler interface {
	// Handle normalizes err into an *Error
	Handle(ctx context.Context, err error) *Error

	// Recover decides what the caller should do after err
	Recover(ctx context.Context, err error) RecoveryStrategy
}

// DefaultErrorHandler is the default implementation of ErrorHandler
type DefaultErrorHandler struct {
	recoveryPolicies map[ErrorType]RecoveryAction
}

// NewDefaultErrorHandler creates a new default error handler
func NewDefaultErrorHandler() *DefaultErrorHandler {
	return &DefaultErrorHandler{
		recoveryPolicies: map[ErrorType]RecoveryAction{
			ErrorTypeValidation: RecoveryActionLog,
			ErrorTypeUser:       RecoveryActionLog,
			ErrorTypeSystem:     RecoveryActionAbort,
		},
	}
}

// SetPolicy overrides the action taken for errors of the given type
func (h *DefaultErrorHandler) SetPolicy(errorType ErrorType, action RecoveryAction) {
	h.recoveryPolicies[errorType] = action
}

// Handle processes an error and returns it as an *Error
func (h *DefaultErrorHandler) Handle(ctx context.Context, err error) *Error {
	if err == nil {
		return nil
	}

	if e, ok := AsError(err); ok {
		return e
	}

	return WrapError(err, "UNKNOWN_ERROR", err.Error())
}

// Recover returns the recovery strategy for err
func (h *DefaultErrorHandler) Recover(ctx context.Context, err error) RecoveryStrategy {
	e := h.Handle(ctx, err)
	if e == nil {
		return RecoveryStrategy{Action: RecoveryActionLog}
	}

	action, exists := h.recoveryPolicies[e.Type]
	if !exists {
		action = RecoveryActionLog
	}

	return RecoveryStrategy{
		Action:  action,
		Message: fmt.Sprintf("Recovery strategy for %s error: %s", e.Type, e.Message),
	}
}
