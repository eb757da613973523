package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func loginRequest(body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{Body: body}
}

func TestLogin_Success(t *testing.T) {
	h := NewAuthHandler(newTestGate())

	resp, err := h.Login(context.Background(), loginRequest(`{"username":"admin","password":"hunter2"}`))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, resp.Body)
	}

	var out struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &out); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !out.Success || out.Token == "" {
		t.Errorf("Expected success with token, got %+v", out)
	}

	// The issued token must pass verification.
	if _, err := newTestGate().Verify(out.Token); err != nil {
		t.Errorf("Issued token failed verification: %v", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(newTestGate())

	resp, _ := h.Login(context.Background(), loginRequest(`{"username":"admin","password":"wrong"}`))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", resp.StatusCode)
	}

	var out map[string]interface{}
	json.Unmarshal([]byte(resp.Body), &out)
	if _, ok := out["token"]; ok {
		t.Error("Failed login must not return a token")
	}
	if out["error"] == "" {
		t.Error("Expected error field in response")
	}
}

func TestLogin_InvalidBody(t *testing.T) {
	h := NewAuthHandler(newTestGate())

	resp, _ := h.Login(context.Background(), loginRequest(`{not json`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestVerify_ValidToken(t *testing.T) {
	h := NewAuthHandler(newTestGate())

	req := events.APIGatewayProxyRequest{
		Headers: map[string]string{"Authorization": "Bearer " + makeToken(t)},
	}
	resp, err := h.Verify(context.Background(), req)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, resp.Body)
	}

	var out struct {
		Valid bool   `json:"valid"`
		User  string `json:"user"`
	}
	json.Unmarshal([]byte(resp.Body), &out)
	if !out.Valid || out.User != testAdminUser {
		t.Errorf("Expected valid=%t user=%s, got %+v", true, testAdminUser, out)
	}
}

func TestVerify_MissingToken(t *testing.T) {
	h := NewAuthHandler(newTestGate())

	resp, _ := h.Verify(context.Background(), events.APIGatewayProxyRequest{})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Expected status 401 for missing token, got %d", resp.StatusCode)
	}
}

func TestVerify_InvalidToken(t *testing.T) {
	h := NewAuthHandler(newTestGate())

	req := events.APIGatewayProxyRequest{
		Headers: map[string]string{"Authorization": "Bearer garbage"},
	}
	resp, _ := h.Verify(context.Background(), req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("Expected status 403 for invalid token, got %d", resp.StatusCode)
	}
}
