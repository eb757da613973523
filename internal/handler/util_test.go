package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jun/driverelay/internal/auth"
)

const (
	testJWTSecret = "test-secret"
	testAdminUser = "admin"
	testAdminPass = "hunter2"
)

func newTestGate() *auth.Gate {
	return auth.NewGate(testAdminUser, testAdminPass, testJWTSecret)
}

// makeToken issues a valid session token for the test admin.
func makeToken(t *testing.T) string {
	t.Helper()
	token, err := newTestGate().Login(testAdminUser, testAdminPass, false)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return token
}

func TestAuthenticate_BearerToken(t *testing.T) {
	req := events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"Authorization": "Bearer " + makeToken(t),
		},
	}

	user, err := Authenticate(req, newTestGate())
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user != testAdminUser {
		t.Errorf("Expected identity '%s', got '%s'", testAdminUser, user)
	}
}

func TestAuthenticate_CaseInsensitiveHeader(t *testing.T) {
	req := events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"authorization": "Bearer " + makeToken(t), // lowercase
		},
	}

	user, err := Authenticate(req, newTestGate())
	if err != nil {
		t.Fatalf("Authenticate with lowercase header failed: %v", err)
	}
	if user != testAdminUser {
		t.Errorf("Expected identity '%s', got '%s'", testAdminUser, user)
	}
}

func TestAuthenticate_NoToken(t *testing.T) {
	req := events.APIGatewayProxyRequest{
		Headers: map[string]string{},
	}

	_, err := Authenticate(req, newTestGate())
	if !errors.Is(err, auth.ErrMissingToken) {
		t.Errorf("Expected ErrMissingToken, got %v", err)
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	req := events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"Authorization": "Token abc", // not a bearer scheme
		},
	}

	_, err := Authenticate(req, newTestGate())
	if !errors.Is(err, auth.ErrMissingToken) {
		t.Errorf("Expected ErrMissingToken for non-bearer scheme, got %v", err)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	req := events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"Authorization": "Bearer invalid-jwt-token",
		},
	}

	_, err := Authenticate(req, newTestGate())
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": testAdminUser,
		"exp": time.Now().Add(-1 * time.Hour).Unix(),
	})
	signed, _ := expired.SignedString([]byte(testJWTSecret))

	req := events.APIGatewayProxyRequest{
		Headers: map[string]string{
			"Authorization": "Bearer " + signed,
		},
	}

	_, err := Authenticate(req, newTestGate())
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}
