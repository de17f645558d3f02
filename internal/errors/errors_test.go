package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/rentbuy/internal/logger"
	"github.com/stwalsh4118/rentbuy/internal/middleware"
	"github.com/stwalsh4118/rentbuy/internal/services"
	"github.com/stwalsh4118/rentbuy/internal/simulator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestContext creates a test Gin context with logger and request ID in context.
func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/scenarios/simulate", nil)

	c.Set("logger", logger.New("test"))
	c.Set(middleware.RequestIDKey, "test-request-id")

	return c, w
}

// parseErrorResponse parses the JSON response into an ErrorResponse struct.
func parseErrorResponse(t *testing.T, body *bytes.Buffer) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &response), "Failed to parse error response JSON")
	return response
}

func TestSimpleResponses(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *gin.Context)
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "not found",
			call:       func(c *gin.Context) { NotFound(c, "Preset not found") },
			wantStatus: http.StatusNotFound,
			wantCode:   ErrNotFound,
			wantMsg:    "Preset not found",
		},
		{
			name:       "bad request",
			call:       func(c *gin.Context) { BadRequest(c, "Malformed JSON body", nil) },
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrBadRequest,
			wantMsg:    "Malformed JSON body",
		},
		{
			name: "internal server error",
			call: func(c *gin.Context) {
				InternalServerError(c, "Failed to run simulation", errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrInternalServer,
			wantMsg:    "Failed to run simulation",
		},
		{
			name: "service unavailable",
			call: func(c *gin.Context) {
				ServiceUnavailable(c, "Preset store unavailable", errors.New("connection refused"))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrServiceUnavailable,
			wantMsg:    "Preset store unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()

			tt.call(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted(), "Expected handler chain to be aborted")

			response := parseErrorResponse(t, w.Body)
			assert.Equal(t, tt.wantCode, response.Error.Code)
			assert.Equal(t, tt.wantMsg, response.Error.Message)
			assert.Equal(t, "test-request-id", response.Error.RequestID)
			assert.Nil(t, response.Error.Details)
		})
	}
}

func TestInternalErrorsDoNotLeakCause(t *testing.T) {
	c, w := setupTestContext()

	InternalServerError(c, "Failed to run simulation", errors.New("password=hunter2"))

	assert.NotContains(t, w.Body.String(), "hunter2")
}

func TestBadRequest_WithDetails(t *testing.T) {
	c, w := setupTestContext()

	BadRequest(c, "Invalid input", map[string]interface{}{
		"field": "home_price",
	})

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrBadRequest, response.Error.Code)
	assert.Equal(t, "home_price", response.Error.Details["field"])
}

func TestValidationError(t *testing.T) {
	c, w := setupTestContext()

	in := simulator.ScenarioInputs{
		HomePrice:     -1,
		LoanTermYears: 30,
		CurrentRent:   2000,
	}
	err := services.NewValidator().Struct(in)
	require.Error(t, err, "Expected validation to fail")

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))

	ValidationError(c, validationErrors)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrValidation, response.Error.Code)
	assert.Equal(t, "Validation failed for one or more fields", response.Error.Message)
	assert.Equal(t, "test-request-id", response.Error.RequestID)
	assert.Equal(t, "Must be greater than 0", response.Error.Details["home_price"])
}

func TestFormatValidationError(t *testing.T) {
	tests := []struct {
		tag      string
		param    string
		expected string
	}{
		{tag: "required", expected: "This field is required"},
		{tag: "min", param: "5", expected: "Value is too small (minimum: 5)"},
		{tag: "max", param: "100", expected: "Value is too large (maximum: 100)"},
		{tag: "gt", param: "0", expected: "Must be greater than 0"},
		{tag: "gte", param: "-1", expected: "Must be greater than or equal to -1"},
		{tag: "lt", param: "100", expected: "Must be less than 100"},
		{tag: "lte", param: "1", expected: "Must be less than or equal to 1"},
		{tag: "oneof", param: "embedded postgres sqlite", expected: "Must be one of: embedded postgres sqlite"},
		{tag: "finite", expected: "Must be a finite number"},
		{tag: "unknown_tag", expected: "Validation failed for tag: unknown_tag"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			result := formatValidationError(&mockFieldError{tag: tt.tag, param: tt.param})
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestErrorResponseWithoutContext(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/presets/x", nil)

	NotFound(c, "Preset not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrNotFound, response.Error.Code)
	assert.Empty(t, response.Error.RequestID, "Expected empty request ID when not in context")
}

func TestErrorConstants(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", ErrNotFound)
	assert.Equal(t, "BAD_REQUEST", ErrBadRequest)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", ErrInternalServer)
	assert.Equal(t, "VALIDATION_ERROR", ErrValidation)
	assert.Equal(t, "SERVICE_UNAVAILABLE", ErrServiceUnavailable)
	assert.Equal(t, "RATE_LIMITED", ErrRateLimited)
}

// mockFieldError is a mock implementation of validator.FieldError for testing.
type mockFieldError struct {
	tag   string
	param string
}

func (m *mockFieldError) Tag() string                    { return m.tag }
func (m *mockFieldError) ActualTag() string              { return m.tag }
func (m *mockFieldError) Namespace() string              { return "" }
func (m *mockFieldError) StructNamespace() string        { return "" }
func (m *mockFieldError) Field() string                  { return "home_price" }
func (m *mockFieldError) StructField() string            { return "HomePrice" }
func (m *mockFieldError) Value() interface{}             { return nil }
func (m *mockFieldError) Param() string                  { return m.param }
func (m *mockFieldError) Kind() reflect.Kind             { return reflect.Float64 }
func (m *mockFieldError) Type() reflect.Type             { return reflect.TypeOf(0.0) }
func (m *mockFieldError) Translate(ut.Translator) string { return "" }
func (m *mockFieldError) Error() string                  { return "" }
