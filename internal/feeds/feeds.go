package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/rwestgarth/linkedin-engine/internal/content"
	"github.com/rwestgarth/linkedin-engine/internal/logging"
)

const (
	fetchTimeout = 15 * time.Second
	userAgent    = "LinkedIn-Content-Engine/1.0"
)

// FeedConfig describes one RSS/Atom source.
type FeedConfig struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	CategoryHint string `json:"category_hint"`
}

type feedsFile struct {
	Feeds []FeedConfig `json:"feeds"`
}

// LoadConfig reads the feed list from a JSON config file.
func LoadConfig(path string) ([]FeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feeds config %s: %w", path, err)
	}

	var file feedsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing feeds config %s: %w", path, err)
	}
	return file.Feeds, nil
}

// Fetcher retrieves articles from configured RSS/Atom feeds.
type Fetcher struct {
	feeds  []FeedConfig
	client *http.Client
	parser *gofeed.Parser
	logger *slog.Logger
}

// NewFetcher builds a fetcher over the given feed list.
func NewFetcher(feeds []FeedConfig, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		feeds:  feeds,
		client: &http.Client{Timeout: fetchTimeout},
		parser: gofeed.NewParser(),
		logger: logger,
	}
}

// Name identifies the source for run logs.
func (f *Fetcher) Name() string { return "rss" }

// Fetch retrieves all feeds and returns entries published after cutoff.
// A failing feed is logged and skipped; it never aborts the others.
func (f *Fetcher) Fetch(ctx context.Context, cutoff time.Time) ([]*content.Article, error) {
	var all []*content.Article
	for _, fc := range f.feeds {
		articles, err := f.fetchFeed(ctx, fc, cutoff)
		if err != nil {
			f.logger.Warn("feed fetch failed", logging.Feed(fc.Name), logging.Err(err))
			continue
		}
		f.logger.Info("feed fetched", logging.Feed(fc.Name), slog.Int("articles", len(articles)))
		all = append(all, articles...)
	}
	return all, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, fc FeedConfig, cutoff time.Time) ([]*content.Article, error) {
	var lastErr error
	for _, url := range candidateURLs(fc.URL) {
		feed, err := f.fetchURL(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		if len(feed.Items) == 0 {
			lastErr = fmt.Errorf("no entries at %s", url)
			continue
		}
		return itemsToArticles(feed, fc, cutoff), nil
	}
	return nil, lastErr
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return f.parser.ParseString(string(body))
}

// candidateURLs returns the configured URL plus the beehiiv sibling path:
// some platforms serve the same feed under /feed or /rss but not both.
func candidateURLs(url string) []string {
	switch {
	case strings.HasSuffix(url, "/feed"):
		return []string{url, strings.TrimSuffix(url, "/feed") + "/rss"}
	case strings.HasSuffix(url, "/rss"):
		return []string{url, strings.TrimSuffix(url, "/rss") + "/feed"}
	default:
		return []string{url}
	}
}

func itemsToArticles(feed *gofeed.Feed, fc FeedConfig, cutoff time.Time) []*content.Article {
	var articles []*content.Article
	for _, item := range feed.Items {
		published := publishedAt(item)
		if !published.IsZero() && published.Before(cutoff) {
			continue
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}

		articles = append(articles, &content.Article{
			Title:        item.Title,
			Summary:      item.Description,
			Content:      body,
			URL:          item.Link,
			Published:    published,
			Source:       fc.Name,
			CategoryHint: fc.CategoryHint,
		})
	}
	return articles
}

func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return time.Time{}
}
