package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the principal inside the signed session cookie.
type SessionClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HttpOnly session cookies. The cookie
// value is an HS256 token signed with the configured session secret, so the
// server stays stateless across instances.
type SessionManager struct {
	secret       []byte
	ttl          time.Duration
	cookieName   string
	cookieSecure bool
}

func NewSessionManager(secret string, ttl time.Duration, cookieName string, cookieSecure bool) *SessionManager {
	return &SessionManager{
		secret:       []byte(secret),
		ttl:          ttl,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// Issue binds the principal to the caller's session.
func (m *SessionManager) Issue(w http.ResponseWriter, p *Principal) error {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   p.ID,
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", p.ID),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the principal bound to the request's session cookie, or false
// when no valid session is present.
func (m *SessionManager) Read(r *http.Request) (*Principal, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	return &Principal{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, true
}

// Clear destroys the session by expiring the cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
