// Package google provides OAuth2 credential loading for the Google APIs the
// pipeline talks to (Docs and Gmail).
//
// Credentials are loaded once per run, either from the GOOGLE_CREDENTIALS
// environment variable (base64-encoded authorized-user JSON, the CI path) or
// from a local token.json written by the auth command. The resulting
// Credentials value is passed explicitly into each API client at
// construction; there is no package-level token state.
package google
