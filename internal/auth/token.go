package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/richfield/wordClockApi/internal/config"
)

var (
	// ErrNoToken means the request carried no token at all. Callers map
	// this to "authentication required" rather than "invalid token".
	ErrNoToken = errors.New("no token provided")

	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the contents of a bearer token: the standard time claims
// plus the identity of the account it was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Issuer creates and verifies signed bearer tokens.
//
// Login tokens are short-lived; every verified request is answered with
// a fresh long-lived token (Rotate), so active clients keep a sliding
// session while idle ones fall back to re-authentication.
type Issuer struct {
	secret     []byte
	loginTTL   time.Duration
	sessionTTL time.Duration
}

// NewIssuer builds an Issuer from config. Login tokens expire after one
// hour, rotated tokens after thirty days.
func NewIssuer(cfg *config.Config) *Issuer {
	return &Issuer{
		secret:     []byte(cfg.TokenSecret),
		loginTTL:   time.Hour,
		sessionTTL: 30 * 24 * time.Hour,
	}
}

// Issue creates a signed login token for the given account.
func (i *Issuer) Issue(userID uint, username string) (string, error) {
	return i.sign(userID, username, i.loginTTL)
}

// Rotate mints a fresh session token carrying the same identity as the
// verified claims, with expiry extended to the full session TTL.
func (i *Issuer) Rotate(claims *Claims) (string, error) {
	return i.sign(claims.UserID, claims.Username, i.sessionTTL)
}

func (i *Issuer) sign(userID uint, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
	})
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string. Expired, tampered or
// malformed tokens return ErrInvalidToken; the gate decides the status
// code.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
