package generate

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwestgarth/linkedin-engine/internal/content"
	"github.com/rwestgarth/linkedin-engine/internal/history"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.NewFile(0, os.DevNull), &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

const draftResponse = `---POST---
Most eCommerce brands are solving the wrong problem.

They obsess over traffic while 70% of carts get abandoned.

What would change if you spent a week on retention instead?
---ALT_HOOK_1---
Your traffic is fine. Your funnel is not.
---ALT_HOOK_2---
70% of your carts never convert. Here's why.
---IMAGE_PROMPT---
A minimalist illustration of a leaking shopping cart funnel
---END---`

func TestParseDraft(t *testing.T) {
	draft := ParseDraft(draftResponse)

	assert.Contains(t, draft.Post, "solving the wrong problem")
	assert.Contains(t, draft.Post, "retention instead?")
	require.Len(t, draft.AltHooks, 2)
	assert.Equal(t, "Your traffic is fine. Your funnel is not.", draft.AltHooks[0])
	assert.Equal(t, "70% of your carts never convert. Here's why.", draft.AltHooks[1])
	assert.Equal(t, "A minimalist illustration of a leaking shopping cart funnel", draft.ImagePrompt)
}

func TestParseDraftMissingEndMarker(t *testing.T) {
	raw := "---POST---\npost body here\n---IMAGE_PROMPT---\nan image"
	draft := ParseDraft(raw)

	assert.Equal(t, "post body here", draft.Post)
	assert.Equal(t, "an image", draft.ImagePrompt)
	assert.Equal(t, "", draft.AltHooks[0])
}

func TestParseDraftGarbage(t *testing.T) {
	draft := ParseDraft("no markers at all")
	assert.Equal(t, "", draft.Post)
}

func TestGenerateAttachesPersonaAndArticle(t *testing.T) {
	article := &content.Article{Title: "Cart abandonment study", Category: "eCommerce"}
	g := &Generator{
		chat: func(ctx context.Context, preamble, message string) (string, error) {
			assert.Contains(t, preamble, "The eCommerce Observer")
			assert.Contains(t, message, "Cart abandonment study")
			return draftResponse, nil
		},
		logger: testLogger(),
	}

	draft, err := g.Generate(context.Background(), article, "The eCommerce Observer")
	require.NoError(t, err)
	assert.Equal(t, "The eCommerce Observer", draft.Persona)
	assert.Same(t, article, draft.Article)
}

func TestGenerateRejectsEmptyPost(t *testing.T) {
	g := &Generator{
		chat: func(ctx context.Context, preamble, message string) (string, error) {
			return "I cannot write that.", nil
		},
		logger: testLogger(),
	}

	_, err := g.Generate(context.Background(), &content.Article{Title: "t"}, "The Human")
	assert.Error(t, err)
}

func articleWith(title, category, source string, score int) *content.Article {
	return &content.Article{Title: title, Category: category, Source: source, TotalScore: score}
}

func TestSelectStoriesPrefersDiversity(t *testing.T) {
	// A Saturday: no day-of-week weights apply.
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	articles := []*content.Article{
		articleWith("ai-1", "AI", "s1", 45),
		articleWith("ai-2", "AI", "s2", 44),
		articleWith("sales-1", "Sales", "s3", 40),
		articleWith("ecom-1", "eCommerce", "s4", 35),
	}

	selected := SelectStories(articles, &history.Store{}, now, 3)

	require.Len(t, selected, 3)
	assert.Equal(t, "ai-1", selected[0].Title)
	assert.Equal(t, "sales-1", selected[1].Title)
	assert.Equal(t, "ecom-1", selected[2].Title)
}

func TestSelectStoriesRelaxesWhenShort(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	articles := []*content.Article{
		articleWith("ai-1", "AI", "s1", 45),
		articleWith("ai-2", "AI", "s2", 44),
		articleWith("ai-3", "AI", "s3", 43),
	}

	selected := SelectStories(articles, &history.Store{}, now, 3)
	assert.Len(t, selected, 3)
}

func TestSelectStoriesAppliesDayWeights(t *testing.T) {
	// A Monday: "AI in Sales" gets a 1.5x multiplier.
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	articles := []*content.Article{
		articleWith("plain", "eCommerce", "s1", 40),
		articleWith("boosted", "AI in Sales", "s2", 30), // 30*1.5 = 45
	}

	selected := SelectStories(articles, &history.Store{}, now, 1)
	require.Len(t, selected, 1)
	assert.Equal(t, "boosted", selected[0].Title)
}

func TestSelectStoriesSkipsCooldownSource(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	hist := &history.Store{}
	hist.Record(now.AddDate(0, 0, -1), "AI", "p", "hot-source", "")

	articles := []*content.Article{
		articleWith("cooled", "AI", "hot-source", 45),
		articleWith("fresh", "Sales", "other", 30),
	}

	selected := SelectStories(articles, hist, now, 1)
	require.Len(t, selected, 1)
	assert.Equal(t, "fresh", selected[0].Title)
}

func TestAssignPersonasByAffinity(t *testing.T) {
	articles := []*content.Article{
		{Title: "a", Category: "eCommerce"},
		{Title: "b", Category: "AI"},
		{Title: "c", Category: "Sales"},
	}

	personas := AssignPersonas(articles, &history.Store{})

	assert.Equal(t, []string{
		"The eCommerce Observer",
		"The Honest AI User",
		"The Sales Realist",
	}, personas)
}

func TestAssignPersonasNoRepeatsWithinBatch(t *testing.T) {
	articles := []*content.Article{
		{Category: "AI"}, {Category: "AI"}, {Category: "AI"}, {Category: "AI"}, {Category: "AI"},
	}

	personas := AssignPersonas(articles, &history.Store{})

	seen := map[string]int{}
	for _, p := range personas[:4] {
		seen[p]++
	}
	// Four distinct personas exist; the first four assignments use each once.
	assert.Len(t, seen, 4)
}

func TestAssignPersonasRespectsStreak(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	hist := &history.Store{}
	for i := 1; i <= 3; i++ {
		hist.Record(now.AddDate(0, 0, -i), "AI", "The Honest AI User", "s", "")
	}

	personas := AssignPersonas([]*content.Article{{Category: "AI"}}, hist)
	assert.NotEqual(t, "The Honest AI User", personas[0])
}
