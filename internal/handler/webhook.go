package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jun/driverelay/internal/auth"
	"github.com/jun/driverelay/internal/model"
	"github.com/jun/driverelay/internal/webhook"
)

// WebhookHandler forwards payloads to the n8n automation endpoints.
type WebhookHandler struct {
	client *webhook.Client
	gate   *auth.Gate
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(client *webhook.Client, gate *auth.Gate) *WebhookHandler {
	return &WebhookHandler{client: client, gate: gate}
}

// YouTubeLink forwards a video URL to the automation endpoint.
func (h *WebhookHandler) YouTubeLink(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := Authenticate(req, h.gate); err != nil {
		return authErrorResponse(err), nil
	}

	var input struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(req.Body), &input); err != nil {
		return errorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}
	if input.URL == "" {
		return errorResponse(http.StatusBadRequest, "URL is required"), nil
	}

	reply, err := h.client.ForwardYouTube(ctx, input.URL)
	if err != nil {
		return webhookErrorResponse(err), nil
	}

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "YouTube link forwarded to n8n",
		"n8nResponse": reply,
	}), nil
}

// PasteText forwards pasted text and its metadata to the automation endpoint.
func (h *WebhookHandler) PasteText(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := Authenticate(req, h.gate); err != nil {
		return authErrorResponse(err), nil
	}

	// Decoding into TextMetadata drops unrecognized fields and defaults the
	// recognized ones.
	var input struct {
		Content  string              `json:"content"`
		Metadata *model.TextMetadata `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(req.Body), &input); err != nil {
		return errorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}

	reply, err := h.client.ForwardText(ctx, input.Content, input.Metadata)
	if err != nil {
		return webhookErrorResponse(err), nil
	}

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Text forwarded to n8n",
		"n8nResponse": reply,
	}), nil
}

// webhookErrorResponse maps forwarder errors onto the status taxonomy.
func webhookErrorResponse(err error) events.APIGatewayProxyResponse {
	if errors.Is(err, webhook.ErrInvalidURL) || errors.Is(err, webhook.ErrNoContent) {
		return errorResponse(http.StatusBadRequest, err.Error())
	}

	var statusErr *webhook.StatusError
	if errors.As(err, &statusErr) {
		fmt.Printf("Webhook error: %v\n", statusErr)
		return errorResponseDetails(http.StatusInternalServerError, "Webhook request failed", statusErr.Error())
	}

	fmt.Printf("Webhook error: %v\n", err)
	return errorResponseDetails(http.StatusInternalServerError, "Webhook request failed", err.Error())
}
