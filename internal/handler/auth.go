package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jun/driverelay/internal/auth"
)

// AuthHandler handles admin login and token verification.
type AuthHandler struct {
	gate *auth.Gate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// Login authenticates the admin identity and issues a session token.
func (h *AuthHandler) Login(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var input LoginRequest
	if err := json.Unmarshal([]byte(req.Body), &input); err != nil {
		return errorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}

	token, err := h.gate.Login(input.Username, input.Password, input.RememberMe)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errorResponse(http.StatusUnauthorized, "Invalid username or password"), nil
		}
		fmt.Printf("Login error: %v\n", err)
		return errorResponse(http.StatusInternalServerError, "Failed to issue token"), nil
	}

	fmt.Printf("Admin login: %s\n", input.Username)

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"message": "Login successful",
	}), nil
}

// Verify reports whether the presented session token is valid.
func (h *AuthHandler) Verify(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	user, err := Authenticate(req, h.gate)
	if err != nil {
		return authErrorResponse(err), nil
	}

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  user,
	}), nil
}
