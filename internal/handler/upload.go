package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/jun/driverelay/internal/adapter"
	"github.com/jun/driverelay/internal/auth"
	"github.com/jun/driverelay/internal/model"
	"golang.org/x/sync/errgroup"
)

// maxUploadFiles bounds the number of file parts per request. Per-file size
// is the transport's concern, not enforced here.
const maxUploadFiles = 50

// UploadHandler accepts multipart uploads and relays them to the storage
// provider.
type UploadHandler struct {
	storageProvider adapter.StorageProvider
	gate            *auth.Gate
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(provider adapter.StorageProvider, gate *auth.Gate) *UploadHandler {
	return &UploadHandler{storageProvider: provider, gate: gate}
}

// uploadForm is the parsed multipart request: the files to relay plus at
// most one metadata document.
type uploadForm struct {
	files    []adapter.UploadInput
	metadata *adapter.UploadInput
}

// parseUploadForm decodes the proxy-event body and splits it into parts.
func parseUploadForm(req events.APIGatewayProxyRequest) (*uploadForm, error) {
	contentType := GetHeader(req, "Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("expected multipart/form-data request")
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, fmt.Errorf("missing multipart boundary")
	}

	var body []byte
	if req.IsBase64Encoded {
		body, err = base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
	} else {
		body = []byte(req.Body)
	}

	form := &uploadForm{}
	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read multipart body: %w", err)
		}

		switch part.FormName() {
		case "files":
			if len(form.files) >= maxUploadFiles {
				part.Close()
				return nil, fmt.Errorf("too many files (max %d)", maxUploadFiles)
			}
			content, err := io.ReadAll(part)
			part.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read file part: %w", err)
			}
			form.files = append(form.files, adapter.UploadInput{
				Name:     part.FileName(),
				MIMEType: part.Header.Get("Content-Type"),
				Content:  content,
			})
		case "metadata":
			if form.metadata != nil {
				part.Close()
				return nil, fmt.Errorf("only one metadata document is allowed")
			}
			content, err := io.ReadAll(part)
			part.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read metadata part: %w", err)
			}
			form.metadata = &adapter.UploadInput{
				Name:     part.FileName(),
				MIMEType: part.Header.Get("Content-Type"),
				Content:  content,
			}
		default:
			part.Close()
		}
	}

	return form, nil
}

// Upload relays the uploaded files to the destination folder. The metadata
// document, when present, is uploaded first and synchronously; the remaining
// files go out as one parallel batch with fail-fast join semantics. One
// failed file fails the whole request; no partial success is reported.
func (h *UploadHandler) Upload(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
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

	form, err := parseUploadForm(req)
	if err != nil {
		return errorResponse(http.StatusBadRequest, err.Error()), nil
	}
	if len(form.files) == 0 {
		return errorResponse(http.StatusBadRequest, "No files uploaded"), nil
	}

	batchID := uuid.New().String()
	fmt.Printf("Upload %s: %d file(s), metadata=%t\n", batchID, len(form.files), form.metadata != nil)

	records := make([]model.UploadedFile, 0, len(form.files)+1)

	// Metadata goes first so the destination folder never shows file records
	// without their metadata record.
	if form.metadata != nil {
		rec, err := storage.UploadFile(ctx, *form.metadata)
		if err != nil {
			fmt.Printf("Upload %s: metadata upload failed: %v\n", batchID, err)
			return errorResponseDetails(http.StatusInternalServerError, "Failed to upload metadata document", err.Error()), nil
		}
		rec.Kind = "metadata"
		records = append(records, *rec)
	}

	fileRecords := make([]model.UploadedFile, len(form.files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range form.files {
		i, f := i, f
		g.Go(func() error {
			rec, err := storage.UploadFile(gctx, f)
			if err != nil {
				return fmt.Errorf("upload %q: %w", f.Name, err)
			}
			rec.Kind = "file"
			fileRecords[i] = *rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Printf("Upload %s: batch failed: %v\n", batchID, err)
		return errorResponseDetails(http.StatusInternalServerError, "Failed to upload files", err.Error()), nil
	}

	records = append(records, fileRecords...)

	return jsonResponse(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Successfully uploaded %d file(s)", len(form.files)),
		"files":   records,
		"count":   len(records),
	}), nil
}
