package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsAndStatuses(t *testing.T) {
	tests := []struct {
		err    error
		kind   string
		status int
	}{
		{ValidationError("bad input", nil), KindValidation, http.StatusBadRequest},
		{ConfigurationError("missing token", nil), KindConfiguration, http.StatusInternalServerError},
		{NotFoundError("no such order", nil), KindNotFound, http.StatusNotFound},
		{UpstreamError("gateway down", nil), KindUpstream, http.StatusInternalServerError},
		{PersistenceError("write failed", nil), KindPersistence, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		appErr := GetAppError(tt.err)
		assert.NotNil(t, appErr)
		assert.Equal(t, tt.kind, appErr.Kind)
		assert.Equal(t, tt.status, ErrorStatus(tt.err))
	}
}

func TestErrorPredicatesSurviveWrapping(t *testing.T) {
	inner := NotFoundError("no such order", errors.New("record not found"))
	wrapped := fmt.Errorf("handling webhook: %w", inner)

	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.Equal(t, http.StatusNotFound, ErrorStatus(wrapped))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := UpstreamError("gateway call failed", errors.New("connection refused"))
	assert.Equal(t, "gateway call failed: connection refused", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "connection refused")
}

func TestErrorStatusDefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(errors.New("plain")))
}

func TestGetAppErrorOnPlainError(t *testing.T) {
	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.False(t, IsPersistenceError(errors.New("plain")))
}
