package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// AuthFlow drives the one-time installed-app authorization used by the auth
// command: print a consent URL, exchange the pasted code, persist token.json.
type AuthFlow struct {
	conf *oauth2.Config
}

// NewAuthFlow builds an authorization flow from a downloaded OAuth client
// file (credentials.json from the Google Cloud console).
func NewAuthFlow(credentialsPath string) (*AuthFlow, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("reading OAuth client file %s", credentialsPath), Err: err}
	}

	conf, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, &AuthError{Reason: "parsing OAuth client file", Err: err}
	}
	conf.RedirectURL = "urn:ietf:wg:oauth:2.0:oob"

	return &AuthFlow{conf: conf}, nil
}

// AuthURL returns the consent URL the user must visit.
func (f *AuthFlow) AuthURL() string {
	return f.conf.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code for a token and writes it to
// tokenPath in the authorized-user format LoadCredentials reads back.
func (f *AuthFlow) Exchange(ctx context.Context, authCode, tokenPath string) error {
	token, err := f.conf.Exchange(ctx, authCode)
	if err != nil {
		return &AuthError{Reason: "exchanging authorization code", Err: err}
	}

	user := authorizedUser{
		Token:        token.AccessToken,
		RefreshToken: token.RefreshToken,
		ClientID:     f.conf.ClientID,
		ClientSecret: f.conf.ClientSecret,
	}
	if !token.Expiry.IsZero() {
		user.Expiry = token.Expiry.UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	if err := os.WriteFile(tokenPath, data, 0600); err != nil {
		return fmt.Errorf("writing token file %s: %w", tokenPath, err)
	}
	return nil
}
