package googledrive

import (
	"context"
	"fmt"

	"github.com/jun/driverelay/internal/adapter"
	"github.com/jun/driverelay/internal/credential"
	"golang.org/x/oauth2"
)

// Provider implements adapter.StorageProvider for Google Drive.
type Provider struct {
	oauthConfig *oauth2.Config
	creds       *credential.Store
	folderID    string
}

// NewProvider creates a new Google Drive provider.
func NewProvider(oauthConfig *oauth2.Config, creds *credential.Store, folderID string) *Provider {
	return &Provider{oauthConfig: oauthConfig, creds: creds, folderID: folderID}
}

// GetAdapter returns a DriveAdapter for the current delegated credential.
func (p *Provider) GetAdapter(ctx context.Context) (adapter.StorageAdapter, error) {
	if !p.creds.Present() {
		return nil, adapter.ErrNotAuthenticated
	}

	// The oauth2 client refreshes the access token in memory when it expires;
	// the refreshed token is not persisted anywhere.
	client := p.oauthConfig.Client(ctx, p.creds.Token())

	storage, err := NewDriveAdapter(ctx, client, p.folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive adapter: %w", err)
	}

	return storage, nil
}
