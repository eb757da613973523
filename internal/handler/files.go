package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jun/driverelay/internal/adapter"
	"github.com/jun/driverelay/internal/auth"
)

// FilesHandler lists previously uploaded items of the destination folder.
type FilesHandler struct {
	storageProvider adapter.StorageProvider
	gate            *auth.Gate
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(provider adapter.StorageProvider, gate *auth.Gate) *FilesHandler {
	return &FilesHandler{storageProvider: provider, gate: gate}
}

// List queries the storage provider for the folder contents. Nothing is
// cached; every call re-fetches from the provider.
func (h *FilesHandler) List(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := Authenticate(req, h.gate); err != nil {
		return authErrorResponse(err), nil
	}

	storage, err := h.storageProvider.GetAdapter(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrNotAuthenticated) {
			return errorResponse(http.StatusUnauthorized, "Not authenticated with Google Drive"), nil
		}
		fmt.Printf("GetAdapter error: %v\n", err)
		return errorResponse(http.StatusInternalServerError, "Failed to get storage adapter"), nil
	}

	entries, err := storage.ListFolder(ctx)
	if err != nil {
		fmt.Printf("ListFolder error: %v\n", err)
		return errorResponseDetails(http.StatusInternalServerError, "Failed to list files", err.Error()), nil
	}

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"files": entries,
		"count": len(entries),
	}), nil
}
