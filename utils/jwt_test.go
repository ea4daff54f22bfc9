package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/haneulab/thumbsmith-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithAuthHeader(value string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		c.Request.Header.Set("Authorization", value)
	}
	return c
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assert.Equal(t, "abc", ExtractToken(contextWithAuthHeader("Bearer abc")))
	assert.Equal(t, "abc", ExtractToken(contextWithAuthHeader("bearer abc")))
	assert.Equal(t, "", ExtractToken(contextWithAuthHeader("")))
	assert.Equal(t, "", ExtractToken(contextWithAuthHeader("Bearer")))
	assert.Equal(t, "", ExtractToken(contextWithAuthHeader("Basic abc")))
}

func TestParseToken(t *testing.T) {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = "secret"

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	token, err := ParseToken(signed, cfg)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	_, err = ParseToken(signed, &config.EnvConfig{})
	assert.Error(t, err)
}

func TestUserIDFromClaims(t *testing.T) {
	id := uuid.New()

	got, err := UserIDFromClaims(jwt.MapClaims{"user_id": id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = UserIDFromClaims(jwt.MapClaims{"sub": id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = UserIDFromClaims(jwt.MapClaims{})
	assert.Error(t, err)

	_, err = UserIDFromClaims(jwt.MapClaims{"user_id": "not-a-uuid"})
	assert.Error(t, err)
}

func TestHashTokenSHA256(t *testing.T) {
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		HashTokenSHA256("abc"),
	)
	assert.NotEqual(t, HashTokenSHA256("a"), HashTokenSHA256("b"))
}
