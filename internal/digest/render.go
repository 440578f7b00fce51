package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/rwestgarth/linkedin-engine/internal/config"
	"github.com/rwestgarth/linkedin-engine/internal/content"
)

// Digest is the fully rendered output of one run: the email bodies, the
// Google Doc block and the subject line. Constructed fresh each run, sent
// once, then discarded.
type Digest struct {
	Subject     string
	HTML        string
	Text        string
	DocBody     string
	Recommended *content.Draft
}

// Render produces the digest from the run's drafts and category balance.
// It is a pure function of its inputs: identical drafts, distribution and
// run time yield byte-identical output.
func Render(drafts []*content.Draft, dist []content.CategoryCount, now time.Time) (*Digest, error) {
	recommended, _, err := Recommend(drafts)
	if err != nil {
		return nil, err
	}

	return &Digest{
		Subject:     "Daily LinkedIn Drafts - " + now.Format("02 January 2006"),
		HTML:        renderHTML(drafts, recommended, dist, now),
		Text:        renderText(drafts, recommended, dist, now),
		DocBody:     renderDocBody(drafts, recommended, dist, now),
		Recommended: recommended,
	}, nil
}

func dateLine(now time.Time) string {
	return now.Format("Monday, 02 January 2006")
}

func category(d *content.Draft) string {
	if d.Article == nil || d.Article.Category == "" {
		return "General"
	}
	return d.Article.Category
}

func altHook(d *content.Draft, i int) string {
	if i < len(d.AltHooks) {
		return d.AltHooks[i]
	}
	return ""
}

// renderText builds the plain-text fallback body.
func renderText(drafts []*content.Draft, recommended *content.Draft, dist []content.CategoryCount, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Daily LinkedIn Drafts - %s\n\n", dateLine(now))

	b.WriteString("TODAY'S SOURCES:\n")
	for _, d := range drafts {
		fmt.Fprintf(&b, "- %s (%s) - Score: %d/%d\n",
			d.Article.Title, d.Article.Source, d.Score(), config.MaxTotalScore)
	}

	b.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")

	for i, d := range drafts {
		fmt.Fprintf(&b, "DRAFT %d | %s | %s\n", i+1, d.Persona, category(d))
		fmt.Fprintf(&b, "Source: %s (%s)\n", d.Article.Title, d.Article.Source)
		b.WriteString(strings.Repeat("-", 40) + "\n\n")
		b.WriteString(d.Post + "\n\n")
		b.WriteString("Alternative Hooks:\n")
		fmt.Fprintf(&b, "1. %s\n2. %s\n\n", altHook(d, 0), altHook(d, 1))
		fmt.Fprintf(&b, "Image Prompt: %s\n", d.ImagePrompt)
		b.WriteString(strings.Repeat("-", 40) + "\n\n")
	}

	fmt.Fprintf(&b, "RECOMMENDATION: Draft by %s on %q - highest source score (%d/%d)\n\n",
		recommended.Persona, recommended.Article.Title, recommended.Score(), config.MaxTotalScore)

	b.WriteString("CONTENT BALANCE (LAST 7 DAYS):\n")
	for _, cc := range dist {
		fmt.Fprintf(&b, "- %s: %d posts\n", cc.Category, cc.Count)
	}

	return b.String()
}

// renderDocBody builds the ruled plain-text block prepended to the Google
// Doc.
func renderDocBody(drafts []*content.Draft, recommended *content.Draft, dist []content.CategoryCount, now time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "  %s - Daily LinkedIn Drafts\n", dateLine(now))
	b.WriteString(rule + "\n\n")

	b.WriteString("TODAY'S SOURCES:\n")
	for _, d := range drafts {
		fmt.Fprintf(&b, "- %s (%s) - Score: %d/%d\n",
			d.Article.Title, d.Article.Source, d.Score(), config.MaxTotalScore)
	}
	b.WriteString("\n" + strings.Repeat("-", 50) + "\n")

	for i, d := range drafts {
		b.WriteString("\n")
		fmt.Fprintf(&b, "DRAFT %d | %s | %s\n", i+1, d.Persona, category(d))
		fmt.Fprintf(&b, "Source: %s (%s)\n", d.Article.Title, d.Article.Source)
		b.WriteString(strings.Repeat("-", 40) + "\n\n")
		b.WriteString(d.Post + "\n\n")
		b.WriteString("Alternative Hooks:\n")
		fmt.Fprintf(&b, "1. %s\n2. %s\n\n", altHook(d, 0), altHook(d, 1))
		fmt.Fprintf(&b, "Image Prompt: %s\n", d.ImagePrompt)
		b.WriteString(strings.Repeat("-", 40) + "\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "RECOMMENDATION: Draft by %s on %q - highest source score (%d/%d)\n",
		recommended.Persona, recommended.Article.Title, recommended.Score(), config.MaxTotalScore)

	b.WriteString("\nCONTENT BALANCE (LAST 7 DAYS):\n")
	for _, cc := range dist {
		fmt.Fprintf(&b, "- %s: %d posts\n", cc.Category, cc.Count)
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}
