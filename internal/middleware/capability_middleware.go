package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/launchpad/internal/app/auth"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// ContextCapability holds the *auth.Capability resolved for the request
const ContextCapability = "capability"

// CapabilityMiddleware resolves the caller's hiring capability once per request
type CapabilityMiddleware struct {
	authzService *auth.AuthorizationService
}

// NewCapabilityMiddleware creates a new CapabilityMiddleware
func NewCapabilityMiddleware(authzService *auth.AuthorizationService) *CapabilityMiddleware {
	return &CapabilityMiddleware{authzService: authzService}
}

// ResolveCapability must run after JWTAuth
func (m *CapabilityMiddleware) ResolveCapability() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := MustUserID(c)
		if !ok {
			c.Abort()
			return
		}

		capability, err := m.authzService.Resolve(c.Request.Context(), userID)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextCapability, capability)
		c.Next()
	}
}

// AdminOnly rejects callers without admin capability. Requires ResolveCapability.
func (m *CapabilityMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		capability, ok := GetCapability(c)
		if !ok {
			HandleAPIError(c, apperrors.NewUnauthorizedError("Capability not resolved"))
			c.Abort()
			return
		}
		if err := m.authzService.RequireAdmin(capability); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCapability returns the capability stored by ResolveCapability
func GetCapability(c *gin.Context) (*auth.Capability, bool) {
	value, exists := c.Get(ContextCapability)
	if !exists {
		return nil, false
	}
	capability, ok := value.(*auth.Capability)
	return capability, ok && capability != nil
}
