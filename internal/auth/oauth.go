package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jun/driverelay/internal/credential"
	"golang.org/x/oauth2"
)

// DriveAuth handles the delegated-credential lifecycle for Google Drive:
// consent URL generation, authorization-code exchange, and inspection.
type DriveAuth struct {
	oauthConfig *oauth2.Config
	creds       *credential.Store
}

// NewDriveAuth creates a new DriveAuth.
// The oauthConfig should be constructed by the caller (e.g., from environment
// variables) with the Drive file scope.
func NewDriveAuth(oauthConfig *oauth2.Config, creds *credential.Store) *DriveAuth {
	return &DriveAuth{oauthConfig: oauthConfig, creds: creds}
}

// AuthURL returns the URL to redirect the operator to for Google consent.
// Offline access is requested and re-consent is forced so that a refresh
// token is always issued.
func (s *DriveAuth) AuthURL() string {
	return s.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades the authorization code for a token and installs it as the
// process-wide delegated credential. The raw token JSON is logged so the
// operator can copy it into GOOGLE_TOKEN; this service performs no automatic
// persistence.
func (s *DriveAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	s.creds.Set(token)

	if blob, err := json.Marshal(token); err == nil {
		log.Printf("Drive credential obtained. Set GOOGLE_TOKEN to persist across restarts: %s", blob)
	}

	return token, nil
}

// Status reports whether a delegated credential is present and when it
// expires.
func (s *DriveAuth) Status() (bool, time.Time) {
	if !s.creds.Present() {
		return false, time.Time{}
	}
	return true, s.creds.Token().Expiry
}
