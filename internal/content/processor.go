package content

import (
	"html"
	"log/slog"
	"strings"
)

const (
	// maxContentLength caps article bodies; newsletters can run very long.
	maxContentLength = 5000

	// snippetLength is how much body text the borderline duplicate check
	// compares.
	snippetLength = 200
)

// StripHTML removes markup from a text fragment and collapses whitespace.
// It is meant for titles and feed summaries; full HTML email bodies go
// through readability extraction in the gmail package instead.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}

// Process cleans every article in place and removes near-duplicates.
func Process(articles []*Article, threshold float64, logger *slog.Logger) []*Article {
	for _, a := range articles {
		a.Title = StripHTML(a.Title)
		a.Summary = StripHTML(a.Summary)
		a.Content = truncate(StripHTML(a.Content), maxContentLength)
	}

	return Deduplicate(articles, threshold, logger)
}

// Deduplicate removes articles whose title is too similar to one already
// kept. Borderline title matches fall through to a content snippet check.
func Deduplicate(articles []*Article, threshold float64, logger *slog.Logger) []*Article {
	if len(articles) == 0 {
		return articles
	}

	unique := make([]*Article, 0, len(articles))
	for _, a := range articles {
		if isDuplicate(a, unique, threshold) {
			continue
		}
		unique = append(unique, a)
	}

	if removed := len(articles) - len(unique); removed > 0 && logger != nil {
		logger.Info("deduplication removed articles", slog.Int("removed", removed))
	}
	return unique
}

func isDuplicate(a *Article, kept []*Article, threshold float64) bool {
	for _, k := range kept {
		sim := Similarity(strings.ToLower(a.Title), strings.ToLower(k.Title))
		if sim >= threshold {
			return true
		}
		if sim >= threshold-0.15 {
			sa := strings.ToLower(a.Snippet(snippetLength))
			sk := strings.ToLower(k.Snippet(snippetLength))
			if sa != "" && sk != "" && Similarity(sa, sk) >= 0.6 {
				return true
			}
		}
	}
	return false
}

// Similarity returns a 0..1 similarity of two strings using the Dice
// coefficient over character bigrams. Identical strings score 1.
func Similarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}

	ba := bigrams(a)
	bb := bigrams(b)
	if len(ba) == 0 || len(bb) == 0 {
		return 0
	}

	overlap := 0
	for g, n := range ba {
		if m, ok := bb[g]; ok {
			if m < n {
				overlap += m
			} else {
				overlap += n
			}
		}
	}

	total := 0
	for _, n := range ba {
		total += n
	}
	for _, n := range bb {
		total += n
	}
	return 2 * float64(overlap) / float64(total)
}

func bigrams(s string) map[string]int {
	runes := []rune(s)
	grams := make(map[string]int, len(runes))
	for i := 0; i+1 < len(runes); i++ {
		grams[string(runes[i:i+2])]++
	}
	return grams
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
