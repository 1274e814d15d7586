package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flamenca/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleBindingError(t *testing.T) {
	type testRequest struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name" binding:"required,min=2"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req testRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBindingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	post := func(t *testing.T, body string) (*httptest.ResponseRecorder, dto.Response) {
		t.Helper()
		req := httptest.NewRequest("POST", "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w, resp
	}

	t.Run("returns per-field details for invalid input", func(t *testing.T) {
		w, resp := post(t, `{"email": "not-an-email", "name": "X"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 2)

		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.ElementsMatch(t, []string{"email", "name"}, fields)
	})

	t.Run("uses json tag names in details", func(t *testing.T) {
		_, resp := post(t, `{"name": "Carmen"}`)

		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "email", resp.Error.Details[0].Field)
		assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
	})

	t.Run("malformed JSON gets a generic bad request", func(t *testing.T) {
		w, resp := post(t, `{not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("accepts valid input", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"email": "carmen@example.com", "name": "Carmen"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
