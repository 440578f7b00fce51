// Package docs writes rendered digests to Google Docs.
//
// The client authenticates with OAuth2 credentials and prepends each day's
// digest to a fixed document so the newest drafts are always at the top.
// When the Docs API cannot be reached, SaveMarkdownFallback preserves the
// digest as a local markdown file instead of losing the run's output.
package docs
