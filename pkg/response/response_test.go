package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/library-service/internal/repository"
	"github.com/maxviazov/library-service/internal/service"
	"github.com/maxviazov/library-service/pkg/response"
)

// fakeInvalid mimics service aggregated validation error to test mapping without reaching into internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "book-id", Message: "bad"}}}, 400, "invalid_input"},
		{"not_found", repository.ErrNotFound, 404, "not_found"},
		{"wrapped_not_found", fmt.Errorf("get page: %w", repository.ErrNotFound), 404, "not_found"},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists"},
		{"conflict", repository.ErrConflict, 409, "conflict"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			if tc.wantErr == "invalid_input" {
				assert.NotEmpty(t, payload.FieldErrors)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/books/x", nil)
	c.Set("request_id", "req-1")

	response.WriteError(c, errors.New("pool exhausted"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error","request_id":"req-1"}`, w.Body.String())
	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
	assert.EqualError(t, c.Errors[0].Err, "pool exhausted")
}
