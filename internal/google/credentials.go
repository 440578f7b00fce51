package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes are the Google OAuth scopes the pipeline needs: writing to the
// drafts doc, reading the newsletters label and sending the digest.
var Scopes = []string{
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
}

// Credentials is the explicit credential object for one run. It is loaded
// once at startup, passed into each API client at construction, never
// mutated, and discarded at process exit.
type Credentials struct {
	conf  *oauth2.Config
	token *oauth2.Token
}

// AuthError reports that no usable OAuth credential could be loaded.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("google auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("google auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// authorizedUser mirrors the token.json format written by the auth command
// and by Google's client libraries ("authorized user" credentials).
type authorizedUser struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Expiry       string `json:"expiry,omitempty"`
}

// LoadCredentials loads OAuth credentials for the run. Order:
//
//  1. GOOGLE_CREDENTIALS: base64-encoded authorized-user JSON (the CI path).
//     Doubly-encoded blobs are tolerated; some secret stores re-encode.
//  2. tokenPath: a local token.json produced by the auth command.
func LoadCredentials(ctx context.Context, tokenPath string) (*Credentials, error) {
	if b64 := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS")); b64 != "" {
		data, err := decodeCredentialBlob(b64)
		if err != nil {
			return nil, &AuthError{Reason: "decoding GOOGLE_CREDENTIALS", Err: err}
		}
		return credentialsFromJSON(data)
	}

	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("no GOOGLE_CREDENTIALS set and no token file at %s", tokenPath), Err: err}
	}
	return credentialsFromJSON(data)
}

// decodeCredentialBlob base64-decodes the env blob, unwrapping one extra
// layer of encoding if the first decode still looks like base64 JSON.
func decodeCredentialBlob(b64 string) ([]byte, error) {
	first, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}

	decoded := strings.TrimSpace(string(first))
	if strings.HasPrefix(decoded, "eyJ") {
		second, err := base64.StdEncoding.DecodeString(decoded)
		if err == nil {
			return []byte(strings.TrimSpace(string(second))), nil
		}
	}
	return []byte(decoded), nil
}

func credentialsFromJSON(data []byte) (*Credentials, error) {
	var user authorizedUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, &AuthError{Reason: "parsing authorized-user JSON", Err: err}
	}
	if user.RefreshToken == "" && user.Token == "" {
		return nil, &AuthError{Reason: "credential JSON contains neither token nor refresh_token"}
	}

	conf := &oauth2.Config{
		ClientID:     user.ClientID,
		ClientSecret: user.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}

	token := &oauth2.Token{
		AccessToken:  user.Token,
		TokenType:    "Bearer",
		RefreshToken: user.RefreshToken,
	}
	if user.Expiry != "" {
		if t, err := time.Parse(time.RFC3339, user.Expiry); err == nil {
			token.Expiry = t
		}
	}
	if token.Expiry.IsZero() && token.RefreshToken != "" {
		// Force a refresh on first use so a stale access token never ships.
		token.Expiry = time.Unix(1, 0)
	}

	return &Credentials{conf: conf, token: token}, nil
}

// TokenSource returns an auto-refreshing token source for the credentials.
func (c *Credentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	return c.conf.TokenSource(ctx, c.token)
}

// HTTPClient returns an HTTP client authenticated with the credentials.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors
// seen with some Google API endpoints.
func (c *Credentials) HTTPClient(ctx context.Context) *http.Client {
	client := oauth2.NewClient(ctx, c.TokenSource(ctx))

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client
}
