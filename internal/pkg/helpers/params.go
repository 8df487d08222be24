package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// ParseUUIDParam parses a UUID path parameter
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param(paramName))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperrors.NewBadRequestError("Invalid " + paramName + ": must be a UUID").
			WithDetails(map[string]interface{}{"param": paramName, "value": raw})
	}
	return id, nil
}

// ParseOptionalUUID parses an optional UUID from a body or query value; blank means uuid.Nil
func ParseOptionalUUID(raw, field string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError(field + " must be a UUID")
	}
	return id, nil
}

// QueryBool reads a boolean query parameter, falling back to def when absent or malformed
func QueryBool(c *gin.Context, name string, def bool) bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}
