package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jun/driverelay/internal/auth"
)

// GetHeader performs a case-insensitive header lookup on the proxy request.
func GetHeader(req events.APIGatewayProxyRequest, name string) string {
	for k, v := range req.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// GetBearerToken extracts the bearer token from the Authorization header.
// Returns the empty string when no token is present.
func GetBearerToken(req events.APIGatewayProxyRequest) string {
	authHeader := GetHeader(req, "Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Authenticate verifies the admin session token on the request and returns
// the identity it asserts.
func Authenticate(req events.APIGatewayProxyRequest, gate *auth.Gate) (string, error) {
	return gate.Verify(GetBearerToken(req))
}

// jsonResponse marshals v into a JSON proxy response.
func jsonResponse(status int, v interface{}) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(v)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// errorResponse builds the uniform {error} envelope.
func errorResponse(status int, msg string) events.APIGatewayProxyResponse {
	return jsonResponse(status, map[string]string{"error": msg})
}

// errorResponseDetails builds the uniform {error, details} envelope. details
// carries the upstream message for diagnostics only.
func errorResponseDetails(status int, msg, details string) events.APIGatewayProxyResponse {
	return jsonResponse(status, map[string]string{"error": msg, "details": details})
}

// authErrorResponse maps gate errors onto the status split: a missing token
// is 401, a present-but-bad token is 403.
func authErrorResponse(err error) events.APIGatewayProxyResponse {
	if errors.Is(err, auth.ErrMissingToken) {
		return errorResponse(http.StatusUnauthorized, "No token provided")
	}
	return errorResponse(http.StatusForbidden, "Invalid or expired token")
}
