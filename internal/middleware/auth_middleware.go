package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/services"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID      = "userID"
	ContextEmail       = "email"
	ContextDisplayName = "displayName"
)

// AuthMiddleware resolves bearer tokens into callers and provisions their user row
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	userService services.UserService
	logger      zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userService services.UserService, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		userService: userService,
		logger:      logger,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth validates the bearer token and lazily creates the caller's user row
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		// Swagger UI sometimes sends the token as a query parameter
		if authHeader == "" {
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			return
		}

		identity, err := m.jwtService.Resolve(tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			m.logger.Debug().Err(err).Msg("Rejected bearer token")
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		if _, err := m.userService.EnsureUser(c.Request.Context(), identity.UserID, identity.Email, identity.DisplayName); err != nil {
			m.logger.Error().Err(err).Str("userID", identity.UserID.String()).Msg("Failed to provision user")
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextEmail, identity.Email)
		c.Set(ContextDisplayName, identity.DisplayName)
		c.Next()
	}
}

// GetUserID returns the authenticated caller's id
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// MustUserID returns the caller's id or writes a 401 and returns false
func MustUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := GetUserID(c)
	if !ok {
		HandleAPIError(c, apperrors.NewUnauthorizedError("User information not found"))
		return uuid.Nil, false
	}
	return id, true
}
