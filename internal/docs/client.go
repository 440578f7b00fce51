package docs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"github.com/rwestgarth/linkedin-engine/internal/google"
	"github.com/rwestgarth/linkedin-engine/internal/logging"
)

// Client wraps the Google Docs API service.
type Client struct {
	svc    *docs.Service
	logger *slog.Logger
}

// NewClient creates a Google Docs client authenticated with the given
// credentials.
func NewClient(ctx context.Context, creds *google.Credentials, logger *slog.Logger) (*Client, error) {
	svc, err := docs.NewService(ctx, option.WithHTTPClient(creds.HTTPClient(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	return &Client{
		svc:    svc,
		logger: logger,
	}, nil
}

// Prepend inserts body at the top of the document so the newest digest
// always appears first. A trailing blank line separates it from earlier
// entries.
func (c *Client) Prepend(ctx context.Context, documentID, body string) error {
	if documentID == "" {
		return fmt.Errorf("documentID is required")
	}

	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					// Index 1 is the first insertable position in a doc body.
					Location: &docs.Location{Index: 1},
					Text:     body + "\n\n",
				},
			},
		},
	}

	if _, err := c.svc.Documents.BatchUpdate(documentID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update document %s: %w", documentID, err)
	}

	c.logger.Info("prepended digest to document", "document_id", documentID, logging.Status("ok"))
	return nil
}

// SaveMarkdownFallback writes the digest body to a local markdown file when
// the Docs API is unavailable. Returns the path of the written file.
func SaveMarkdownFallback(dir, body string, now time.Time) (string, error) {
	if dir == "" {
		dir = "output"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create fallback directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("drafts_%s.md", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write fallback file: %w", err)
	}
	return path, nil
}
