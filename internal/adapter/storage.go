package adapter

import (
	"context"

	"github.com/jun/driverelay/internal/model"
)

// UploadInput is one file to push to the storage provider.
type UploadInput struct {
	Name     string
	MIMEType string
	Content  []byte
}

// StorageAdapter defines the interface for the destination cloud storage.
// This abstraction allows switching providers without changing the handlers,
// and lets tests substitute a recording fake.
type StorageAdapter interface {
	// UploadFile creates a file in the destination folder and returns the
	// provider's record for it.
	UploadFile(ctx context.Context, in UploadInput) (*model.UploadedFile, error)

	// ListFolder lists non-trashed items of the destination folder, newest
	// first by creation time.
	ListFolder(ctx context.Context) ([]model.FileEntry, error)
}

// StorageProvider defines how to get a StorageAdapter for the current
// delegated credential.
type StorageProvider interface {
	// GetAdapter returns a StorageAdapter, or ErrNotAuthenticated when no
	// delegated credential is present.
	GetAdapter(ctx context.Context) (StorageAdapter, error)
}
