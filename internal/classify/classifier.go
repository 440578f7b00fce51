package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/rwestgarth/linkedin-engine/internal/config"
	"github.com/rwestgarth/linkedin-engine/internal/content"
)

const (
	classifyModel   = "command-r-08-2024"
	classifyTimeout = 120 * time.Second
	neutralScore    = 5
)

const systemPrompt = `You are a content analyst for a LinkedIn content strategist who writes about AI, Sales, and eCommerce. Your job is to categorise and score news articles.

For each article, you must:
1. Assign exactly ONE category from this list: %s
   The "category_hint" from the source is a suggestion but not binding.

2. Score the article on these criteria (1-10 each):
   - data_richness: Does it contain specific data, statistics, or research?
   - contrarian_potential: Could this fuel a take that challenges conventional wisdom?
   - audience_relevance: How relevant to eCommerce founders and sales leaders?
   - timeliness: Is this breaking/trending news vs evergreen?
   - personal_angle_potential: Could a personal story or opinion be woven in?

3. Write a one-line summary (max 20 words) capturing the key insight.

Return your response as a JSON array. Each element:
{
  "article_index": <number matching the article number>,
  "category": "<category>",
  "scores": {"data_richness": <1-10>, "contrarian_potential": <1-10>, "audience_relevance": <1-10>, "timeliness": <1-10>, "personal_angle_potential": <1-10>},
  "one_line_summary": "<summary>"
}

Return ONLY valid JSON. No commentary before or after.`

// chatFn sends one chat turn to the LLM and returns its text reply. It is a
// function value so tests can swap the provider out.
type chatFn func(ctx context.Context, preamble, message string) (string, error)

// Classifier categorises and scores articles in a single batched LLM call.
type Classifier struct {
	chat       chatFn
	categories []string
	logger     *slog.Logger
}

// NewClassifier builds a classifier backed by the Cohere chat API.
func NewClassifier(apiKey string, logger *slog.Logger) *Classifier {
	client := newCohereClient(apiKey)
	chat := func(ctx context.Context, preamble, message string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
		defer cancel()

		resp, err := client.Chat(ctx, &cohere.ChatRequest{
			Message:   message,
			Model:     cohere.String(classifyModel),
			Preamble:  cohere.String(preamble),
			MaxTokens: cohere.Int(4096),
		})
		if err != nil {
			return "", fmt.Errorf("cohere chat: %w", err)
		}
		return resp.Text, nil
	}

	return &Classifier{chat: chat, categories: config.Categories, logger: logger}
}

// newCohereClient builds the SDK client with an HTTP/1.1-only transport;
// the Cohere endpoint intermittently resets HTTP/2 streams.
func newCohereClient(apiKey string) *cohereclient.Client {
	httpClient := &http.Client{
		Timeout: classifyTimeout,
		Transport: &http.Transport{
			ForceAttemptHTTP2: false,
		},
	}
	return cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
}

// result is one element of the model's JSON response.
type result struct {
	ArticleIndex   int            `json:"article_index"`
	Category       string         `json:"category"`
	Scores         map[string]int `json:"scores"`
	OneLineSummary string         `json:"one_line_summary"`
}

// Classify scores every article in one batch call, merges the results back
// and returns the articles sorted by total score descending. A parse failure
// falls back to neutral defaults so the run can continue.
func (c *Classifier) Classify(ctx context.Context, articles []*content.Article) ([]*content.Article, error) {
	if len(articles) == 0 {
		return articles, nil
	}

	preamble := fmt.Sprintf(systemPrompt, strings.Join(c.categories, ", "))
	c.logger.Info("classifying articles", slog.Int("count", len(articles)))

	raw, err := c.chat(ctx, preamble, buildArticlesText(articles))
	if err != nil {
		return nil, err
	}

	results, err := parseResults(raw)
	if err != nil {
		c.logger.Error("failed to parse classification response, using defaults", slog.String("head", head(raw, 200)))
		for _, a := range articles {
			applyDefaults(a)
		}
		sortByScore(articles)
		return articles, nil
	}

	byIndex := make(map[int]result, len(results))
	for _, r := range results {
		byIndex[r.ArticleIndex] = r
	}

	for i, a := range articles {
		r, ok := byIndex[i]
		if !ok {
			applyDefaults(a)
			continue
		}
		a.Category = r.Category
		a.Scores = r.Scores
		a.TotalScore = sumScores(r.Scores)
		a.OneLineSummary = r.OneLineSummary
	}

	sortByScore(articles)
	c.logger.Info("top article",
		slog.String("title", articles[0].Title),
		slog.Int("score", articles[0].TotalScore))
	return articles, nil
}

// buildArticlesText formats articles into a numbered list for the prompt.
func buildArticlesText(articles []*content.Article) string {
	parts := make([]string, 0, len(articles))
	for i, a := range articles {
		parts = append(parts, fmt.Sprintf(
			"Article %d:\nTitle: %s\nSource: %s\nCategory Hint: %s\nContent: %s\n",
			i, a.Title, a.Source, a.CategoryHint, a.Snippet(500)))
	}
	return strings.Join(parts, "\n---\n")
}

// parseResults decodes the model output, tolerating markdown code fences.
func parseResults(raw string) ([]result, error) {
	raw = stripFences(strings.TrimSpace(raw))

	var results []result
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, fmt.Errorf("decoding classification JSON: %w", err)
	}
	return results, nil
}

func stripFences(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	if idx := strings.IndexByte(raw, '\n'); idx >= 0 {
		raw = raw[idx+1:]
	}
	if idx := strings.LastIndex(raw, "```"); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

func applyDefaults(a *content.Article) {
	a.Category = a.CategoryHint
	if a.Category == "" {
		a.Category = config.Categories[0]
	}
	a.Scores = make(map[string]int, len(config.ScoringCriteria))
	for _, criterion := range config.ScoringCriteria {
		a.Scores[criterion] = neutralScore
	}
	a.TotalScore = neutralScore * len(config.ScoringCriteria)
	if a.OneLineSummary == "" {
		a.OneLineSummary = head(a.Title, 80)
	}
}

func sumScores(scores map[string]int) int {
	total := 0
	for _, v := range scores {
		total += v
	}
	return total
}

func sortByScore(articles []*content.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].TotalScore > articles[j].TotalScore
	})
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
