package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jun/driverelay/internal/credential"
	"golang.org/x/oauth2"
)

func TestDriveAuth_AuthURL(t *testing.T) {
	s := NewDriveAuth(&oauth2.Config{
		ClientID:    "test-client-id",
		RedirectURL: "http://localhost:8080/api/auth/callback",
		Scopes:      []string{"https://www.googleapis.com/auth/drive.file"},
		Endpoint: oauth2.Endpoint{
			AuthURL: "https://accounts.google.com/o/oauth2/auth",
		},
	}, credential.NewStore())

	url := s.AuthURL()
	if !strings.Contains(url, "client_id=test-client-id") {
		t.Errorf("AuthURL missing client id: %s", url)
	}
	if !strings.Contains(url, "access_type=offline") {
		t.Errorf("AuthURL must request offline access: %s", url)
	}
	if !strings.Contains(url, "approval_prompt=force") {
		t.Errorf("AuthURL must force re-consent: %s", url)
	}
	if !strings.Contains(url, "drive.file") {
		t.Errorf("AuthURL missing drive scope: %s", url)
	}
}

func TestDriveAuth_Exchange_InstallsCredential(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access-123","refresh_token":"refresh-456","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	creds := credential.NewStore()
	s := NewDriveAuth(&oauth2.Config{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		Endpoint: oauth2.Endpoint{
			TokenURL: tokenServer.URL,
		},
	}, creds)

	token, err := s.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("Exchange failed: %v", err)
	}
	if token.AccessToken != "access-123" {
		t.Errorf("Expected access token 'access-123', got '%s'", token.AccessToken)
	}

	if !creds.Present() {
		t.Error("Expected credential to be installed after exchange")
	}
	if creds.Token().RefreshToken != "refresh-456" {
		t.Errorf("Expected refresh token 'refresh-456', got '%s'", creds.Token().RefreshToken)
	}
}

func TestDriveAuth_Exchange_Failure(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad code", http.StatusBadRequest)
	}))
	defer tokenServer.Close()

	creds := credential.NewStore()
	s := NewDriveAuth(&oauth2.Config{
		Endpoint: oauth2.Endpoint{TokenURL: tokenServer.URL},
	}, creds)

	_, err := s.Exchange(context.Background(), "bad-code")
	if err == nil {
		t.Fatal("Expected error for rejected code, got nil")
	}
	if creds.Present() {
		t.Error("Credential must not be installed on failed exchange")
	}
}

func TestDriveAuth_Status(t *testing.T) {
	creds := credential.NewStore()
	s := NewDriveAuth(&oauth2.Config{}, creds)

	authenticated, _ := s.Status()
	if authenticated {
		t.Error("Expected unauthenticated status for empty store")
	}

	expiry := time.Now().Add(time.Hour)
	creds.Set(&oauth2.Token{AccessToken: "access", Expiry: expiry})

	authenticated, got := s.Status()
	if !authenticated {
		t.Fatal("Expected authenticated status")
	}
	if !got.Equal(expiry) {
		t.Errorf("Expected expiry %v, got %v", expiry, got)
	}
}
