package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwestgarth/linkedin-engine/internal/content"
)

func draft(persona, title string, score int) *content.Draft {
	return &content.Draft{
		Persona:     persona,
		Post:        "Post body for " + title,
		AltHooks:    []string{"hook one", "hook two"},
		ImagePrompt: "an image prompt",
		Article: &content.Article{
			Title:      title,
			Source:     "Test Source",
			Category:   "AI",
			TotalScore: score,
		},
	}
}

func fixtureDrafts() []*content.Draft {
	return []*content.Draft{
		draft("The eCommerce Observer", "story A", 30),
		draft("The Honest AI User", "story B", 42),
		draft("The Sales Realist", "story C", 42),
		draft("The Human", "story D", 28),
		draft("The eCommerce Observer", "story E", 35),
	}
}

func fixtureDist() []content.CategoryCount {
	return []content.CategoryCount{
		{Category: "AI", Count: 3},
		{Category: "Sales", Count: 0},
	}
}

var fixedNow = time.Date(2026, 8, 28, 7, 30, 0, 0, time.UTC)

func TestRecommendPicksHighestScore(t *testing.T) {
	drafts := fixtureDrafts()

	best, idx, err := Recommend(drafts)
	require.NoError(t, err)

	for _, d := range drafts {
		assert.GreaterOrEqual(t, best.Score(), d.Score())
	}
	assert.Equal(t, 1, idx)
}

func TestRecommendTieFirstWins(t *testing.T) {
	best, idx, err := Recommend(fixtureDrafts())
	require.NoError(t, err)

	// story B and story C both score 42; the earlier one wins.
	assert.Equal(t, "story B", best.Article.Title)
	assert.Equal(t, 1, idx)
}

func TestRecommendEmptyInput(t *testing.T) {
	_, _, err := Recommend(nil)
	assert.ErrorIs(t, err, ErrNoDrafts)
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render(fixtureDrafts(), fixtureDist(), fixedNow)
	require.NoError(t, err)
	second, err := Render(fixtureDrafts(), fixtureDist(), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.DocBody, second.DocBody)
	assert.Equal(t, first.Subject, second.Subject)
}

func TestRenderEmptyDrafts(t *testing.T) {
	_, err := Render(nil, fixtureDist(), fixedNow)
	assert.ErrorIs(t, err, ErrNoDrafts)
}

func TestRenderSubjectAndDate(t *testing.T) {
	d, err := Render(fixtureDrafts(), fixtureDist(), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Daily LinkedIn Drafts - 28 August 2026", d.Subject)
	assert.Contains(t, d.Text, "Friday, 28 August 2026")
	assert.Contains(t, d.HTML, "Friday, 28 August 2026")
	assert.Contains(t, d.DocBody, "Friday, 28 August 2026")
}

func TestTextSectionsInFixedOrder(t *testing.T) {
	d, err := Render(fixtureDrafts(), fixtureDist(), fixedNow)
	require.NoError(t, err)

	sources := strings.Index(d.Text, "TODAY'S SOURCES:")
	draft1 := strings.Index(d.Text, "DRAFT 1 |")
	draft5 := strings.Index(d.Text, "DRAFT 5 |")
	rec := strings.Index(d.Text, "RECOMMENDATION:")
	balance := strings.Index(d.Text, "CONTENT BALANCE (LAST 7 DAYS):")

	assert.True(t, sources < draft1 && draft1 < draft5 && draft5 < rec && rec < balance,
		"sections out of order: %d %d %d %d %d", sources, draft1, draft5, rec, balance)
}

func TestHTMLContainsAllSections(t *testing.T) {
	d, err := Render(fixtureDrafts(), fixtureDist(), fixedNow)
	require.NoError(t, err)

	assert.Contains(t, d.HTML, "Today's Sources")
	assert.Contains(t, d.HTML, "Draft 1: The eCommerce Observer | AI")
	assert.Contains(t, d.HTML, "Draft 5:")
	assert.Contains(t, d.HTML, "Recommendation")
	assert.Contains(t, d.HTML, "Content Balance (Last 7 Days)")
	assert.Contains(t, d.HTML, "Score: 42/50")
	assert.Contains(t, d.HTML, "Sales: 0 posts")
}

func TestHTMLEscapesUserContent(t *testing.T) {
	drafts := fixtureDrafts()
	drafts[0].Article.Title = `<script>alert("x")</script>`
	drafts[0].Post = "line one\nline two & more"

	d, err := Render(drafts, fixtureDist(), fixedNow)
	require.NoError(t, err)

	assert.NotContains(t, d.HTML, "<script>")
	assert.Contains(t, d.HTML, "&lt;script&gt;")
	assert.Contains(t, d.HTML, "line one<br>line two &amp; more")
}

func TestRecommendationNamesBestDraft(t *testing.T) {
	d, err := Render(fixtureDrafts(), fixtureDist(), fixedNow)
	require.NoError(t, err)

	assert.Contains(t, d.Text, `RECOMMENDATION: Draft by The Honest AI User on "story B"`)
	assert.Contains(t, d.DocBody, `RECOMMENDATION: Draft by The Honest AI User on "story B"`)
	assert.Equal(t, "The Honest AI User", d.Recommended.Persona)
}

func TestDocBodyRuledHeader(t *testing.T) {
	d, err := Render(fixtureDrafts(), fixtureDist(), fixedNow)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(d.DocBody, strings.Repeat("=", 50)+"\n"))
	assert.True(t, strings.HasSuffix(d.DocBody, strings.Repeat("=", 50)+"\n"))
}
