// Package errors provides standardized error handling for the assistant pipeline.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes. The dispatcher
// uses them as metric labels and structured-log fields, so they must stay
// stable across releases.
type ErrorCode string

const (
	ErrCodeQueryExecutionFailed ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout         ErrorCode = "QUERY_TIMEOUT"

	ErrCodeSessionLoadFailed ErrorCode = "SESSION_LOAD_FAILED"
	ErrCodeSessionSaveFailed ErrorCode = "SESSION_SAVE_FAILED"

	ErrCodeReplyTemplateNotFound ErrorCode = "REPLY_TEMPLATE_NOT_FOUND"
	ErrCodeReplyRenderFailed     ErrorCode = "REPLY_RENDER_FAILED"

	ErrCodeTranscriptIndexFailed ErrorCode = "TRANSCRIPT_INDEX_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSessionSaveFailedError creates a retryable session write error.
func NewSessionSaveFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionSaveFailed,
		Message:   "Conversation context save failed",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTranscriptIndexFailedError creates a retryable transcript indexing error.
func NewTranscriptIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTranscriptIndexFailed,
		Message:   "Chat transcript indexing failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
