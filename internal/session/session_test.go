package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() *Claims {
	now := time.Now().UTC()
	return &Claims{
		Name:  "Jordan Lee",
		Email: "jordan@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestParse_ValidToken(t *testing.T) {
	mgr := NewManager(testSecret)
	tokenString := signToken(t, testSecret, validClaims())

	identity, err := mgr.Parse(tokenString)

	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.Subject)
	assert.Equal(t, "Jordan Lee", identity.Name)
	assert.Equal(t, "jordan@example.com", identity.Email)
}

func TestParse_WrongSecret(t *testing.T) {
	mgr := NewManager(testSecret)
	tokenString := signToken(t, "other-secret", validClaims())

	identity, err := mgr.Parse(tokenString)

	assert.Nil(t, identity)
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	mgr := NewManager(testSecret)
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	tokenString := signToken(t, testSecret, claims)

	identity, err := mgr.Parse(tokenString)

	assert.Nil(t, identity)
	assert.Error(t, err)
}

func TestFromRequest_BearerHeader(t *testing.T) {
	mgr := NewManager(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims()))

	identity := mgr.FromRequest(req)

	require.NotNil(t, identity)
	assert.Equal(t, "Jordan Lee", identity.Name)
}

func TestFromRequest_Cookie(t *testing.T) {
	mgr := NewManager(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: signToken(t, testSecret, validClaims())})

	identity := mgr.FromRequest(req)

	require.NotNil(t, identity)
	assert.Equal(t, "user-1", identity.Subject)
}

func TestFromRequest_AnonymousAndInvalid(t *testing.T) {
	mgr := NewManager(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, mgr.FromRequest(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Nil(t, mgr.FromRequest(req))
}

func TestSignOutCookie(t *testing.T) {
	cookie := SignOutCookie()

	assert.Equal(t, CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
