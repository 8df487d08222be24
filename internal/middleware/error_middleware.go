package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// HandleAPIError maps an error onto the status code taxonomy and writes the error body.
// Client errors echo the error message at WARNING severity; 500s carry the diagnostic in details.
func HandleAPIError(c *gin.Context, err error) {
	status, code, message := classify(err)

	errorDetail := dto.NewErrorDetail(code, message)
	if status < http.StatusInternalServerError {
		errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityWarning)
	}
	if details := apperrors.DetailsOf(err); details != nil {
		errorDetail = errorDetail.WithDetails(details)
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error while serving request")
		errorDetail = errorDetail.WithDetails(err.Error())
	}

	c.JSON(status, dto.NewErrorResponse(errorDetail))
}

func classify(err error) (int, dto.ErrorCode, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.ErrorCodeUnauthorized, err.Error()
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden, err.Error()
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeConflict, err.Error()
	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"
	}
}
