package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
	"github.com/Humanoid-1/Web-backend/pkg/logger"
	"github.com/Humanoid-1/Web-backend/pkg/validator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *ErrorResponse {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"id": "1"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"1"}}`, rec.Body.String())
}

func TestWriteMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMessage(rec, http.StatusCreated, "Thank you for contacting us!")
	assert.JSONEq(t, `{"success":true,"message":"Thank you for contacting us!"}`, rec.Body.String())
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/laptops/1", nil)
	req = req.WithContext(logger.WithCorrelationID(req.Context(), "corr-1"))

	WriteError(rec, req, fmt.Errorf("get: %w", apperrors.NotFound("laptop", "1")), discardLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "corr-1", body.RequestID)
}

func TestWriteError_Sentinels(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{apperrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{fmt.Errorf("bad: %w", apperrors.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, discardLogger())
		assert.Equal(t, tt.status, rec.Code)
		assert.Equal(t, tt.code, decodeError(t, rec).Code)
	}
}

func TestWriteError_InternalDoesNotLeakCause(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=hunter2"), discardLogger())
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestWriteError_ReportsServerErrorsOnly(t *testing.T) {
	var reported []error
	SetReporter(func(_ context.Context, err error) { reported = append(reported, err) })
	t.Cleanup(func() { SetReporter(nil) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(httptest.NewRecorder(), req, apperrors.InvalidInput("nope"), discardLogger())
	boom := errors.New("boom")
	WriteError(httptest.NewRecorder(), req, boom, discardLogger())

	require.Len(t, reported, 1)
	assert.Same(t, boom, reported[0])
}

func TestWriteValidationError(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"required,email"`
	}
	rec := httptest.NewRecorder()
	WriteValidationError(rec, validator.Validate(form{Email: "x"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "must be a valid email address", body.Fields["email"])
}

func TestWriteValidationError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, errors.New("decode request body: EOF"))
	body := decodeError(t, rec)
	assert.Equal(t, "INVALID_INPUT", body.Code)
	assert.True(t, strings.HasPrefix(body.Message, "decode request body"))
}

func TestParseUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := ParseUUID(rec, "not-a-uuid")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PARAMETER", decodeError(t, rec).Code)

	id, ok := ParseUUID(httptest.NewRecorder(), "0b8f5c1e-4d2a-4f7e-9c3b-1a2b3c4d5e6f")
	assert.True(t, ok)
	assert.Equal(t, "0b8f5c1e-4d2a-4f7e-9c3b-1a2b3c4d5e6f", id.String())
}
