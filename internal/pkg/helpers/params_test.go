package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

func testContext(target string, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Params = params
	return c
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()

	t.Run("valid", func(t *testing.T) {
		c := testContext("/", gin.Params{{Key: "id", Value: id.String()}})
		got, err := ParseUUIDParam(c, "id")
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	for _, raw := range []string{"", "42", uuid.Nil.String()} {
		t.Run("invalid "+raw, func(t *testing.T) {
			c := testContext("/", gin.Params{{Key: "id", Value: raw}})
			_, err := ParseUUIDParam(c, "id")
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestParseOptionalUUID(t *testing.T) {
	got, err := ParseOptionalUUID("  ", "toUserId")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)

	_, err = ParseOptionalUUID("nope", "toUserId")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestQueryBool(t *testing.T) {
	assert.True(t, QueryBool(testContext("/?unread=true", nil), "unread", false))
	assert.False(t, QueryBool(testContext("/?unread=0", nil), "unread", true))
	assert.True(t, QueryBool(testContext("/?unread=maybe", nil), "unread", true))
	assert.False(t, QueryBool(testContext("/", nil), "unread", false))
}
