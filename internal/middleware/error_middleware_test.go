package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"bad request", apperrors.NewBadRequestError("Rating is required"), http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"forbidden", apperrors.ErrStudentsOnly, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"not found", apperrors.ErrJobNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"wrapped conflict", fmt.Errorf("create: %w", apperrors.ErrAlreadyApplied), http.StatusConflict, dto.ErrorCodeConflict},
		{"unclassified", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, dto.ErrorSeverityError, resp.Error.Severity)
			} else {
				assert.Equal(t, dto.ErrorSeverityWarning, resp.Error.Severity)
			}
		})
	}

	t.Run("details are passed through", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		HandleAPIError(c, apperrors.NewBadRequestError("Missing required fields: name").
			WithDetails(map[string]interface{}{"fields": []string{"name"}}))

		var resp struct {
			Error struct {
				Message string `json:"message"`
				Details struct {
					Fields []string `json:"fields"`
				} `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Missing required fields: name", resp.Error.Message)
		assert.Equal(t, []string{"name"}, resp.Error.Details.Fields)
	})
}
