package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the admin session cookie.
const CookieName = "acm_admin_session"

var ErrInvalidSession = errors.New("invalid session")

// Claims is the admin session token payload. The session carries a single
// flag: the bearer is the dashboard admin.
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// SessionService signs and validates the admin session cookie (HS256 JWT).
type SessionService struct {
	secret      []byte
	expireHours int
}

// NewSessionService creates a session service.
func NewSessionService(secret string, expireHours int) *SessionService {
	return &SessionService{
		secret:      []byte(secret),
		expireHours: expireHours,
	}
}

// Issue creates a signed admin session token.
func (s *SessionService) Issue() (string, error) {
	claims := Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(s.expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a session token and reports whether it belongs to an admin.
func (s *SessionService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Admin {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// MaxAge returns the cookie lifetime in seconds, matching token expiry.
func (s *SessionService) MaxAge() int {
	return s.expireHours * 3600
}
