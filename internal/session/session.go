// Package session reads identity tokens issued by an external auth service.
// The storefront never issues tokens; it only parses them to greet signed-in
// shoppers by name. All cart, wishlist, and checkout state is keyed by the
// anonymous session key, not by the identity.
package session

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the identity token when no
// Authorization header is present.
const CookieName = "storefront_token"

// Claims are the identity claims the storefront reads from a token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the signed-in shopper extracted from a valid token.
type Identity struct {
	Subject string `json:"subject"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Manager validates identity tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager with the given shared secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Parse validates a token string and returns the identity it carries.
func (m *Manager) Parse(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse identity token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid identity token claims")
	}

	return &Identity{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
	}, nil
}

// FromRequest extracts the identity from the Authorization header or the
// token cookie. An absent or invalid token yields nil; browsing anonymously
// is always allowed.
func (m *Manager) FromRequest(r *http.Request) *Identity {
	tokenString := ""

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		tokenString = strings.TrimPrefix(auth, "Bearer ")
	} else if cookie, err := r.Cookie(CookieName); err == nil {
		tokenString = cookie.Value
	}

	if tokenString == "" {
		return nil
	}

	identity, err := m.Parse(tokenString)
	if err != nil {
		return nil
	}
	return identity
}

// SignOutCookie returns an expired cookie that clears the identity token.
func SignOutCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
