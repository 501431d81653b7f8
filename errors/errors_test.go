package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := NewValidationError(CodeXYExceedsPumpingLength, "xy too long").
		WithContext("xy_length", 2).
		WithContext("pumping_length", 1)

	assert.Equal(t, "[VALIDATION][XY_EXCEEDS_PUMPING_LENGTH] xy too long (pumping_length=1, xy_length=2)", err.Error())
	assert.Equal(t, SeverityWarning, err.Severity)
}

func TestErrorIsComparesCodeAndType(t *testing.T) {
	err := NewValidationError(CodeSplitMismatch, "one message")

	assert.True(t, stderrors.Is(err, NewValidationError(CodeSplitMismatch, "another message")))
	assert.False(t, stderrors.Is(err, NewUserError(CodeSplitMismatch, "")))
	assert.False(t, stderrors.Is(err, NewValidationError(CodeMissingString, "")))
}

func TestHelpersFollowWrappedChain(t *testing.T) {
	inner := NewValidationError(CodeMissingString, "Please enter a string s.")
	wrapped := fmt.Errorf("evaluating case 3: %w", inner)

	assert.True(t, HasCode(wrapped, CodeMissingString))
	assert.Equal(t, CodeMissingString, CodeOf(wrapped))
	assert.Equal(t, "Please enter a string s.", MessageOf(wrapped))

	plain := stderrors.New("boom")
	assert.False(t, HasCode(plain, CodeMissingString))
	assert.Equal(t, "", CodeOf(plain))
	assert.Equal(t, "boom", MessageOf(plain))
	assert.Equal(t, "", MessageOf(nil))
}

func TestWrapErrorKeepsCause(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := WrapError(cause, CodeConfigLoad, "failed to read config file")

	require.Equal(t, ErrorTypeSystem, err.Type)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestDefaultErrorHandlerRecover(t *testing.T) {
	h := NewDefaultErrorHandler()
	ctx := context.Background()

	assert.Equal(t, RecoveryActionLog, h.Recover(ctx, NewValidationError(CodeSplitMismatch, "x")).Action)
	assert.Equal(t, RecoveryActionLog, h.Recover(ctx, NewUserError(CodeUnknownCommand, "x")).Action)
	assert.Equal(t, RecoveryActionAbort, h.Recover(ctx, NewSystemError(CodeReadlineInit, "x")).Action)

	// Plain errors are treated as system failures.
	assert.Equal(t, RecoveryActionAbort, h.Recover(ctx, stderrors.New("io")).Action)

	h.SetPolicy(ErrorTypeSystem, RecoveryActionLog)
	assert.Equal(t, RecoveryActionLog, h.Recover(ctx, NewSystemError(CodeOutputWrite, "x")).Action)
}

func TestHandleNil(t *testing.T) {
	assert.Nil(t, NewDefaultErrorHandler().Handle(context.Background(), nil))
}
