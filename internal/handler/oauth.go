package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jun/driverelay/internal/auth"
)

// OAuthHandler handles the Google Drive delegated-credential flow.
type OAuthHandler struct {
	driveAuth *auth.DriveAuth
	gate      *auth.Gate
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(driveAuth *auth.DriveAuth, gate *auth.Gate) *OAuthHandler {
	return &OAuthHandler{driveAuth: driveAuth, gate: gate}
}

// AuthURL returns the Google consent URL.
func (h *OAuthHandler) AuthURL(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return jsonResponse(http.StatusOK, map[string]string{
		"authUrl": h.driveAuth.AuthURL(),
	}), nil
}

// Callback handles the OAuth2 callback from Google and renders a small HTML
// confirmation page for the operator's browser.
func (h *OAuthHandler) Callback(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	code := req.QueryStringParameters["code"]
	if code == "" {
		return htmlResponse(http.StatusBadRequest, "Authorization failed", "Missing authorization code."), nil
	}

	if _, err := h.driveAuth.Exchange(ctx, code); err != nil {
		fmt.Printf("Exchange error: %v\n", err)
		return htmlResponse(http.StatusInternalServerError, "Authorization failed", "Could not exchange the authorization code. Check the server log."), nil
	}

	return htmlResponse(http.StatusOK, "Google Drive connected",
		"Authorization complete. The credential has been logged for manual persistence; you can close this window."), nil
}

// Status reports the current delegated-credential state.
func (h *OAuthHandler) Status(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := Authenticate(req, h.gate); err != nil {
		return authErrorResponse(err), nil
	}

	authenticated, expiry := h.driveAuth.Status()
	expiresAt := ""
	if authenticated && !expiry.IsZero() {
		expiresAt = expiry.Format(time.RFC3339)
	}

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"authenticated": authenticated,
		"expiresAt":     expiresAt,
	}), nil
}

// htmlResponse renders the operator-facing confirmation page.
func htmlResponse(status int, title, message string) events.APIGatewayProxyResponse {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
<h1>%s</h1>
<p>%s</p>
</body>
</html>`, title, title, message)

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "text/html; charset=utf-8",
		},
	}
}
