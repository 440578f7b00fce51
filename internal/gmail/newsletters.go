package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rwestgarth/linkedin-engine/internal/content"
)

// NewsletterConfig maps sender address patterns to a source name and a
// category hint.
type NewsletterConfig struct {
	Name           string   `json:"name"`
	SenderPatterns []string `json:"sender_patterns"`
	CategoryHint   string   `json:"category_hint"`
}

type newslettersFile struct {
	Newsletters []NewsletterConfig `json:"newsletters"`
}

// LoadNewsletterConfig reads the newsletter mapping from a JSON config file.
func LoadNewsletterConfig(path string) ([]NewsletterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading newsletters config %s: %w", path, err)
	}

	var file newslettersFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing newsletters config %s: %w", path, err)
	}
	return file.Newsletters, nil
}

// MatchSender resolves a sender address against the configured newsletters.
// Unknown senders get a descriptive fallback so their articles stay usable.
func MatchSender(sender string, newsletters []NewsletterConfig) NewsletterConfig {
	senderLower := strings.ToLower(sender)
	for _, n := range newsletters {
		for _, pattern := range n.SenderPatterns {
			if strings.Contains(senderLower, strings.ToLower(pattern)) {
				return n
			}
		}
	}
	return NewsletterConfig{
		Name:         fmt.Sprintf("Unknown Newsletter (%s)", sender),
		CategoryHint: "General",
	}
}

// ApplyNewsletterConfig stamps source names and category hints onto fetched
// newsletter articles based on their sender.
func ApplyNewsletterConfig(articles []*content.Article, newsletters []NewsletterConfig) {
	for _, a := range articles {
		n := MatchSender(a.Sender, newsletters)
		a.Source = n.Name
		a.CategoryHint = n.CategoryHint
	}
}

// NewsletterSource pairs the Gmail client with the newsletter config so
// fetched articles carry the configured source names and category hints.
type NewsletterSource struct {
	Client      *Client
	Newsletters []NewsletterConfig
}

func (s *NewsletterSource) Name() string { return s.Client.Name() }

func (s *NewsletterSource) Fetch(ctx context.Context, cutoff time.Time) ([]*content.Article, error) {
	articles, err := s.Client.Fetch(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	ApplyNewsletterConfig(articles, s.Newsletters)
	return articles, nil
}
