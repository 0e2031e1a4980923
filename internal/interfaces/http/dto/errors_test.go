package dto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeTypeMismatch, http.StatusUnprocessableEntity},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"bare not found", shared.ErrNotFound, ErrCodeNotFound},
		{"coded not found", shared.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer not found"), ErrCodeNotFound},
		{"wrapped conflict", fmt.Errorf("save: %w", shared.NewConflictError("ISBN_EXISTS", "dup")), ErrCodeAlreadyExists},
		{"validation", shared.NewValidationError("INVALID_EMAIL", "bad"), ErrCodeValidation},
		{"type mismatch", shared.NewTypeMismatchError("NOT_A_BOOK", "bad"), ErrCodeTypeMismatch},
		{"lock timeout", fmt.Errorf("lock: %w", shared.ErrLockTimeout), ErrCodeUnavailable},
		{"lock wait cancelled", fmt.Errorf("lock: %w: %w", shared.ErrLockTimeout, context.Canceled), ErrCodeUnavailable},
		{"lock wait past deadline", fmt.Errorf("lock: %w: %w", shared.ErrLockTimeout, context.DeadlineExceeded), ErrCodeUnavailable},
		{"plain error", assert.AnError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyError(tt.err))
		})
	}
}

func TestNewNotFoundResponse(t *testing.T) {
	body, err := json.Marshal(NewNotFoundResponse())
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Not found"}`, string(body))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 21, 2, 10)

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, int64(21), resp.Meta.Total)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "email", Message: "This field is required"},
	})

	assert.Equal(t, ErrCodeValidation, resp.Code)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Len(t, resp.Details, 1)
}
