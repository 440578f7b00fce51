package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/rwestgarth/linkedin-engine/internal/content"
	"github.com/rwestgarth/linkedin-engine/internal/google"
	"github.com/rwestgarth/linkedin-engine/internal/logging"
)

// newsletterLabel is the Gmail label the pipeline reads source emails from.
const newsletterLabel = "newsletters"

// Client wraps the Gmail Users service for newsletter fetching and digest
// sending. Credentials are injected at construction and never mutated.
type Client struct {
	svc    *gmail.UsersService
	logger *slog.Logger
}

// NewClient creates a Gmail client from run credentials.
func NewClient(ctx context.Context, creds *google.Credentials, logger *slog.Logger) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(creds.HTTPClient(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating Gmail service: %w", err)
	}

	return &Client{svc: svc.Users, logger: logger}, nil
}

// Name identifies the source for run logs.
func (c *Client) Name() string { return "gmail" }

// Fetch retrieves newsletter emails received after cutoff and converts them
// to articles. Individual message failures are logged and skipped.
func (c *Client) Fetch(ctx context.Context, cutoff time.Time) ([]*content.Article, error) {
	query := fmt.Sprintf("label:%s after:%s", newsletterLabel, cutoff.Format("2006/01/02"))
	c.logger.Info("querying Gmail", slog.String("query", query))

	var articles []*content.Article
	err := c.foreachMessage(ctx, query, func(id string) error {
		msg, err := c.svc.Messages.Get("me", id).Format("full").Context(ctx).Do()
		if err != nil {
			c.logger.Warn("failed to get message", slog.String("id", id), logging.Err(err))
			return nil
		}

		article := messageToArticle(msg, cutoff)
		if article != nil {
			articles = append(articles, article)
			c.logger.Debug("processed newsletter", slog.String("title", article.Title), logging.Source(article.Source))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing newsletter messages: %w", err)
	}

	c.logger.Info("newsletters fetched", slog.Int("articles", len(articles)))
	return articles, nil
}

// foreachMessage iterates over all message IDs matching the query.
func (c *Client) foreachMessage(ctx context.Context, query string, fn func(id string) error) error {
	pageToken := ""
	for {
		req := c.svc.Messages.List("me").Q(query).MaxResults(100).Context(ctx)
		if pageToken != "" {
			req.PageToken(pageToken)
		}
		res, err := req.Do()
		if err != nil {
			return err
		}
		for _, m := range res.Messages {
			if err := fn(m.Id); err != nil {
				return err
			}
		}
		if res.NextPageToken == "" {
			return nil
		}
		pageToken = res.NextPageToken
	}
}

// messageToArticle converts one Gmail message into an article, or nil when
// the message is older than the cutoff or has no usable body.
func messageToArticle(msg *gmail.Message, cutoff time.Time) *content.Article {
	if msg.Payload == nil {
		return nil
	}

	subject := HeaderValue(msg, "Subject")
	if subject == "" {
		subject = "No Subject"
	}
	sender := HeaderValue(msg, "From")

	published := time.Now().UTC()
	if dateStr := HeaderValue(msg, "Date"); dateStr != "" {
		if t, err := mail.ParseDate(dateStr); err == nil {
			published = t.UTC()
		}
	}
	if published.Before(cutoff) {
		return nil
	}

	body := CleanBody(ExtractText(msg.Payload))

	summary := body
	if len(summary) > 200 {
		summary = summary[:200] + "..."
	}

	return &content.Article{
		Title:     subject,
		Summary:   summary,
		Content:   body,
		URL:       "gmail:" + msg.Id,
		Published: published,
		Sender:    sender,
	}
}

// HeaderValue extracts a header value from a Gmail message.
func HeaderValue(m *gmail.Message, header string) string {
	if m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if h.Name == header {
			return h.Value
		}
	}
	return ""
}

// SendDigest sends the rendered digest as a multipart/alternative email and
// returns the Gmail message ID.
func (c *Client) SendDigest(ctx context.Context, msg *DigestMessage) (string, error) {
	raw, err := msg.BuildRaw()
	if err != nil {
		return "", err
	}

	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("sending digest: %w", err)
	}

	return sent.Id, nil
}
