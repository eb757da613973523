package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// ShortSessionTTL is the token lifetime for a normal login.
	ShortSessionTTL = 24 * time.Hour
	// LongSessionTTL is the token lifetime when the client asks to be
	// remembered.
	LongSessionTTL = 30 * 24 * time.Hour
)

var (
	// ErrInvalidCredentials is returned when the login pair does not match
	// the configured admin identity.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMissingToken is returned when no token was supplied at all.
	ErrMissingToken = errors.New("no token provided")

	// ErrInvalidToken is returned for malformed, tampered or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Gate authenticates the single admin identity and issues signed session
// tokens. It keeps no state; a token is invalidated only by its expiry.
type Gate struct {
	adminUsername string
	adminPassword string
	jwtSecret     string
}

// NewGate creates a Gate for the configured admin identity.
func NewGate(adminUsername, adminPassword, jwtSecret string) *Gate {
	return &Gate{adminUsername: adminUsername, adminPassword: adminPassword, jwtSecret: jwtSecret}
}

// Login checks the credential pair in constant time and, on success, returns
// a signed session token. rememberMe selects the long lifetime.
func (g *Gate) Login(username, password string, rememberMe bool) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.adminUsername))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.adminPassword))
	if userOK&passOK != 1 {
		return "", ErrInvalidCredentials
	}

	ttl := ShortSessionTTL
	if rememberMe {
		ttl = LongSessionTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(g.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a session token and returns the identity it asserts.
// A missing token and a bad token are distinct conditions so that handlers
// can map them to different status codes.
func (g *Gate) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(g.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if sub, ok := claims["sub"].(string); ok {
			return sub, nil
		}
	}

	return "", ErrInvalidToken
}
