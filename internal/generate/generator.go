package generate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/rwestgarth/linkedin-engine/internal/content"
	"github.com/rwestgarth/linkedin-engine/internal/logging"
)

const (
	draftModel   = "command-r-plus-08-2024"
	draftTimeout = 120 * time.Second
)

// chatFn sends one chat turn to the LLM and returns its text reply.
type chatFn func(ctx context.Context, preamble, message string) (string, error)

// Generator produces LinkedIn post drafts from selected articles.
type Generator struct {
	chat   chatFn
	logger *slog.Logger
}

// NewGenerator builds a generator backed by the Cohere chat API.
func NewGenerator(apiKey string, logger *slog.Logger) *Generator {
	httpClient := &http.Client{
		Timeout: draftTimeout,
		Transport: &http.Transport{
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)

	chat := func(ctx context.Context, preamble, message string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, draftTimeout)
		defer cancel()

		resp, err := client.Chat(ctx, &cohere.ChatRequest{
			Message:     message,
			Model:       cohere.String(draftModel),
			Preamble:    cohere.String(preamble),
			MaxTokens:   cohere.Int(1024),
			Temperature: cohere.Float64(0.7),
		})
		if err != nil {
			return "", fmt.Errorf("cohere chat: %w", err)
		}
		return resp.Text, nil
	}

	return &Generator{chat: chat, logger: logger}
}

// Generate produces one draft for the article in the given persona's voice.
func (g *Generator) Generate(ctx context.Context, article *content.Article, persona string) (*content.Draft, error) {
	g.logger.Info("generating draft",
		slog.String("title", article.Title),
		logging.Persona(persona))

	raw, err := g.chat(ctx, draftPreamble(persona), buildUserText(article))
	if err != nil {
		return nil, err
	}

	draft := ParseDraft(raw)
	if draft.Post == "" {
		return nil, fmt.Errorf("generated response contained no post body")
	}

	draft.Persona = persona
	draft.Article = article
	return draft, nil
}

func buildUserText(article *content.Article) string {
	return fmt.Sprintf(
		"Write a LinkedIn post based on this article.\n\n"+
			"Title: %s\nSource: %s\nCategory: %s\nSummary: %s\nContent:\n%s\n\nURL: %s",
		article.Title, article.Source, article.Category,
		article.OneLineSummary, article.Snippet(1500), article.URL)
}

// Section delimiters in the model's response.
const (
	markPost     = "---POST---"
	markAltHook1 = "---ALT_HOOK_1---"
	markAltHook2 = "---ALT_HOOK_2---"
	markImage    = "---IMAGE_PROMPT---"
	markEnd      = "---END---"
)

// ParseDraft parses the delimiter-framed model output into a draft. Missing
// sections stay empty; a missing ---END--- marker is tolerated.
func ParseDraft(raw string) *content.Draft {
	sections := map[string]string{
		markPost:     "",
		markAltHook1: "",
		markAltHook2: "",
		markImage:    "",
	}

	current := ""
	var lines []string

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(lines, "\n"))
		}
		lines = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		stripped := strings.TrimSpace(line)
		if _, ok := sections[stripped]; ok && strings.HasPrefix(stripped, "---") {
			flush()
			current = stripped
			continue
		}
		if stripped == markEnd {
			break
		}
		if current != "" {
			lines = append(lines, line)
		}
	}
	flush()

	return &content.Draft{
		Post:        sections[markPost],
		AltHooks:    []string{sections[markAltHook1], sections[markAltHook2]},
		ImagePrompt: sections[markImage],
	}
}
