package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jun/driverelay/internal/adapter/googledrive"
	"github.com/jun/driverelay/internal/auth"
	"github.com/jun/driverelay/internal/credential"
	"github.com/jun/driverelay/internal/handler"
	"github.com/jun/driverelay/internal/secret"
	"github.com/jun/driverelay/internal/webhook"
)

// App holds the dependencies for the Lambda function.
type App struct {
	authHandler    *handler.AuthHandler
	oauthHandler   *handler.OAuthHandler
	uploadHandler  *handler.UploadHandler
	filesHandler   *handler.FilesHandler
	webhookHandler *handler.WebhookHandler
	creds          *credential.Store
	allowedOrigins []string
}

// NewApp initializes the application dependencies.
func NewApp(ctx context.Context) *App {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		panic(fmt.Sprintf("unable to load SDK config, %v", err))
	}

	// ---------- Secret Resolver ----------
	var resolver secret.Resolver
	if os.Getenv("DEV_MODE") == "true" {
		resolver = secret.NewEnvResolver()
		fmt.Println("Using EnvResolver (DEV_MODE=true)")
	} else {
		resolver = secret.NewSSMResolver(ssm.NewFromConfig(cfg))
		fmt.Println("Using SSMResolver (SSM Parameter Store)")
	}

	adminPasswordParam := os.Getenv("ADMIN_PASSWORD_PARAM")
	if adminPasswordParam == "" {
		adminPasswordParam = "/driverelay/admin-password"
	}
	adminPassword, err := resolver.GetSecret(ctx, adminPasswordParam)
	if err != nil {
		log.Printf("WARNING: failed to resolve ADMIN_PASSWORD: %v", err)
	}

	jwtSecretParam := os.Getenv("JWT_SECRET_PARAM")
	if jwtSecretParam == "" {
		jwtSecretParam = "/driverelay/jwt-secret"
	}
	jwtSecret, err := resolver.GetSecret(ctx, jwtSecretParam)
	if err != nil {
		log.Printf("WARNING: failed to resolve JWT_SECRET: %v", err)
		jwtSecret = "default-dev-secret"
	}

	googleClientSecretParam := os.Getenv("GOOGLE_CLIENT_SECRET_PARAM")
	if googleClientSecretParam == "" {
		googleClientSecretParam = "/driverelay/google-client-secret"
	}
	googleClientSecret, err := resolver.GetSecret(ctx, googleClientSecretParam)
	if err != nil {
		log.Printf("WARNING: failed to resolve GOOGLE_CLIENT_SECRET: %v", err)
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}

	// OAuth2 Config
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = "http://localhost:8080/api/auth/callback"
	}

	oauthConfig := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: googleClientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/drive.file",
		},
		Endpoint: google.Endpoint,
	}

	// Delegated Credential (optional at startup)
	creds, err := credential.NewStoreFromJSON(os.Getenv("GOOGLE_TOKEN"))
	if err != nil {
		log.Printf("WARNING: failed to parse GOOGLE_TOKEN: %v", err)
		creds = credential.NewStore()
	}

	gate := auth.NewGate(adminUsername, adminPassword, jwtSecret)
	driveAuth := auth.NewDriveAuth(oauthConfig, creds)

	// Storage Provider (fixed destination folder)
	storageProvider := googledrive.NewProvider(oauthConfig, creds, os.Getenv("GOOGLE_DRIVE_FOLDER_ID"))

	// Webhook Client
	n8nClient := webhook.NewClient(
		os.Getenv("N8N_YOUTUBE_WEBHOOK_URL"),
		os.Getenv("N8N_TEXT_WEBHOOK_URL"),
	)

	var allowedOrigins []string
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowedOrigins = append(allowedOrigins, o)
		}
	}

	return &App{
		authHandler:    handler.NewAuthHandler(gate),
		oauthHandler:   handler.NewOAuthHandler(driveAuth, gate),
		uploadHandler:  handler.NewUploadHandler(storageProvider, gate),
		filesHandler:   handler.NewFilesHandler(storageProvider, gate),
		webhookHandler: handler.NewWebhookHandler(n8nClient, gate),
		creds:          creds,
		allowedOrigins: allowedOrigins,
	}
}

// HandleRequest routes API Gateway requests to the appropriate handler.
func (app *App) HandleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	path := req.Path
	method := req.HTTPMethod

	fmt.Printf("Request: %s %s\n", method, path)

	// CORS Preflight
	if method == "OPTIONS" {
		return app.corsResponse(req, events.APIGatewayProxyResponse{StatusCode: 204}), nil
	}

	// Strip /api prefix if present (for CloudFront proxying)
	if strings.HasPrefix(path, "/api") {
		path = strings.TrimPrefix(path, "/api")
	}

	// /auth
	if strings.HasPrefix(path, "/auth") {
		if path == "/auth/login" && method == "POST" {
			return app.corsResponse(req, must(app.authHandler.Login(ctx, req))), nil
		}
		if path == "/auth/verify" && method == "GET" {
			return app.corsResponse(req, must(app.authHandler.Verify(ctx, req))), nil
		}
		if path == "/auth/url" && method == "GET" {
			return app.corsResponse(req, must(app.oauthHandler.AuthURL(ctx, req))), nil
		}
		if path == "/auth/callback" && method == "GET" {
			return app.corsResponse(req, must(app.oauthHandler.Callback(ctx, req))), nil
		}
		if path == "/auth/status" && method == "GET" {
			return app.corsResponse(req, must(app.oauthHandler.Status(ctx, req))), nil
		}
	}

	// /upload
	if path == "/upload" && method == "POST" {
		return app.corsResponse(req, must(app.uploadHandler.Upload(ctx, req))), nil
	}

	// /files
	if path == "/files" && method == "GET" {
		return app.corsResponse(req, must(app.filesHandler.List(ctx, req))), nil
	}

	// /n8n
	if path == "/n8n/youtube-link" && method == "POST" {
		return app.corsResponse(req, must(app.webhookHandler.YouTubeLink(ctx, req))), nil
	}
	if path == "/n8n/paste-text" && method == "POST" {
		return app.corsResponse(req, must(app.webhookHandler.PasteText(ctx, req))), nil
	}

	// Root status
	if (path == "/" || path == "") && method == "GET" {
		body, _ := json.Marshal(map[string]interface{}{
			"message":       "Drive relay API",
			"status":        "running",
			"authenticated": app.creds.Present(),
		})
		return app.corsResponse(req, events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Body:       string(body),
			Headers:    map[string]string{"Content-Type": "application/json"},
		}), nil
	}

	return app.corsResponse(req, events.APIGatewayProxyResponse{
		StatusCode: http.StatusNotFound,
		Body:       fmt.Sprintf("Not Found: %s %s", method, path),
	}), nil
}

// corsResponse adds CORS headers to an API Gateway response. The echoed
// origin must be on the configured allowlist.
func (app *App) corsResponse(req events.APIGatewayProxyRequest, resp events.APIGatewayProxyResponse) events.APIGatewayProxyResponse {
	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}

	origin := handler.GetHeader(req, "Origin")
	allowed := ""
	for _, o := range app.allowedOrigins {
		if strings.EqualFold(o, origin) {
			allowed = o
			break
		}
	}
	if allowed == "" && len(app.allowedOrigins) > 0 {
		allowed = app.allowedOrigins[0]
	}
	if allowed == "" {
		allowed = "http://localhost:3000"
	}

	resp.Headers["Access-Control-Allow-Origin"] = allowed
	resp.Headers["Access-Control-Allow-Credentials"] = "true"
	resp.Headers["Access-Control-Allow-Methods"] = "GET,POST,OPTIONS"
	resp.Headers["Access-Control-Allow-Headers"] = "Content-Type,Authorization"
	return resp
}

// must unwraps a handler response, ignoring the error.
func must(resp events.APIGatewayProxyResponse, err error) events.APIGatewayProxyResponse {
	if err != nil {
		fmt.Printf("Handler error: %v\n", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Body: "Internal Server Error"}
	}
	return resp
}
