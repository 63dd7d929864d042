package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppDefaults(t *testing.T) {
	a, err := newApp(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, ":8080", a.Addr())
	assert.Equal(t, time.Hour, a.SessionTTL)
	assert.False(t, a.Development)
	assert.Empty(t, a.CorsOrigins)
	assert.Equal(t, 10000, a.MaxArea)

	a, err = newApp(map[string]string{
		"APP_PORT":             "localhost:9000",
		"DEVELOPMENT":          "true",
		"CORS_ALLOWED_ORIGINS": "http://a.test,http://b.test",
		"BOARD_MAX_AREA":       "480",
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", a.Addr())
	assert.True(t, a.Development)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, a.CorsOrigins)
	assert.Equal(t, 480, a.MaxArea)
}

func TestDatabase(t *testing.T) {
	_, err := newDatabase(map[string]string{})
	assert.ErrorIs(t, err, ErrNoDatabase)

	passwordFile := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("s3cr&t\n"), 0o600))

	environ := map[string]string{
		"POSTGRES_USER":          "mines",
		"POSTGRES_PASSWORD_FILE": passwordFile,
		"POSTGRES_HOST":          "db",
		"POSTGRES_DB":            "bench",
	}
	c, err := newDatabase(environ)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://mines:s3cr%26t@db:5432/bench?sslmode=disable", c.URL())

	url, err := dbURL(environ)
	require.NoError(t, err)
	assert.Equal(t, c.URL(), url)

	url, err = dbURL(map[string]string{"DATABASE_URL": "postgres://x"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://x", url)
}

func testKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
}

func TestCookiesRoundTrip(t *testing.T) {
	j, err := newJWT(map[string]string{"JWT_PRIVATE_KEY": testKeyPEM(t)})
	require.NoError(t, err)
	assert.Equal(t, 720*time.Hour, j.TokenLifetime)

	cookies, err := newCookies(j, map[string]string{"COOKIES_SAMESITE": "lax"})
	require.NoError(t, err)
	assert.Equal(t, http.SameSiteLaxMode, cookies.SameSite)
	assert.True(t, cookies.Secure)

	token, err := j.Sign(NewPlayerClaims(7, "alice", j.TokenLifetime))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, cookies.Refresh(rec, token))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	claims, err := cookies.ParsePlayerClaims(req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.PlayerId)
	assert.Equal(t, "alice", claims.Username)

	_, err = cookies.ParsePlayerClaims(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}

func TestCookiesBadSameSite(t *testing.T) {
	_, err := newCookies(nil, map[string]string{"COOKIES_SAMESITE": "sometimes"})
	assert.Error(t, err)
}

func TestJWTMissingKey(t *testing.T) {
	_, err := newJWT(map[string]string{})
	assert.Error(t, err)
}
