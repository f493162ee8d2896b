package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, headers map[string]string) *gin.Context {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestExtractPrincipal_ConfiguredHeaderTakesPriority(t *testing.T) {
	c := newTestContext(t, map[string]string{
		"X-Forwarded-User": "alice",
		"Authorization":    "Bearer " + unsignedJWT(t, "bob"),
	})

	assert.Equal(t, "alice", extractPrincipal(c, "X-Forwarded-User"))
}

func TestExtractPrincipal_FallsBackToJWTSubject(t *testing.T) {
	c := newTestContext(t, map[string]string{
		"Authorization": "Bearer " + unsignedJWT(t, "bob"),
	})

	assert.Equal(t, "bob", extractPrincipal(c, "X-Forwarded-User"))
}

func TestExtractPrincipal_AnonymousWhenNeitherPresent(t *testing.T) {
	c := newTestContext(t, nil)

	assert.Equal(t, "anonymous", extractPrincipal(c, "X-Forwarded-User"))
}

func TestExtractPrincipal_MalformedBearerTokenFallsBackToAnonymous(t *testing.T) {
	c := newTestContext(t, map[string]string{
		"Authorization": "Bearer not-a-jwt",
	})

	assert.Equal(t, "anonymous", extractPrincipal(c, ""))
}

func unsignedJWT(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject})
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}
