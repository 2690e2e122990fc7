package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeUpstreamRequestFailed, 3},
		{ErrCodeUpstreamRateLimited, 3},
		{ErrCodeUpstreamTimeout, 2},
		{ErrCodeUpstreamUnauthorized, 0},
		{ErrCodeLocationNotFound, 0},
		{ErrCodeInvalidInput, 0},
		{ErrCodeInternal, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetRetryCount(tt.code))
			assert.Equal(t, tt.want > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewLocationNotFoundError("701")

	bpmn := ConvertToBPMNError(stdErr)

	assert.Equal(t, "LOCATION_NOT_FOUND", bpmn.Code)
	assert.Equal(t, `location "701" not found in organization hierarchy`, bpmn.Message)
	assert.False(t, bpmn.Retryable)
	assert.Equal(t, 0, bpmn.Retries)

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "LOCATION_NOT_FOUND", vars["errorCode"])
	assert.Equal(t, "LOCATION_NOT_FOUND", vars["originalErrorCode"])
	assert.Equal(t, "701", vars["term"])
	assert.Contains(t, vars, "timestamp")
}

func TestConvertToBPMNError_RetryableUpstream(t *testing.T) {
	bpmn := ConvertToBPMNError(NewUpstreamRequestFailedError("get-location", fmt.Errorf("boom")))

	assert.Equal(t, "UPSTREAM_REQUEST_FAILED", bpmn.Code)
	assert.True(t, bpmn.Retryable)
	assert.Equal(t, 3, bpmn.Retries)
	assert.Equal(t, "get-location", bpmn.ErrorVariables["operation"])
}

func TestAsStandardError_ThroughWrapping(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	wrapped := fmt.Errorf("search: %w", NewUpstreamTimeoutError("availability", cause))

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeUpstreamTimeout, stdErr.Code)
	assert.True(t, stderrors.Is(wrapped, cause))

	_, ok = AsStandardError(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewLocationIDNotFoundError(123456)))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", NewLocationNotFoundError("Room 12"))))
	assert.False(t, IsNotFound(NewInvalidInputError("bad")))
	assert.False(t, IsNotFound(nil))
}

func TestWithMetadata(t *testing.T) {
	err := NewInvalidInputError("capacity must be positive").WithMetadata("field", "capacity")

	assert.Equal(t, "capacity", err.Metadata["field"])
	assert.Equal(t, "StandardError[INVALID_INPUT]: Invalid tool input", err.Error())
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "UPSTREAM", GetErrorCategory(ErrCodeUpstreamRateLimited))
	assert.Equal(t, "NOT_FOUND", GetErrorCategory(ErrCodeLocationNotFound))
	assert.Equal(t, "NOT_FOUND", GetErrorCategory(ErrCodeToolNotFound))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
