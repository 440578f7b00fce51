package content

import "time"

// Article is one input item: an RSS entry or a newsletter email, later
// enriched by classification. Immutable once classified.
type Article struct {
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Content      string    `json:"content"`
	URL          string    `json:"url"`
	Published    time.Time `json:"published"`
	Source       string    `json:"source"`
	CategoryHint string    `json:"category_hint"`
	Sender       string    `json:"sender,omitempty"`

	// Set by classification.
	Category       string         `json:"category,omitempty"`
	Scores         map[string]int `json:"scores,omitempty"`
	TotalScore     int            `json:"total_score,omitempty"`
	OneLineSummary string         `json:"one_line_summary,omitempty"`
}

// Snippet returns the first n characters of the best available body text,
// preferring full content over the summary.
func (a *Article) Snippet(n int) string {
	text := a.Content
	if text == "" {
		text = a.Summary
	}
	if len(text) > n {
		return text[:n]
	}
	return text
}

// Draft is one generated LinkedIn post candidate. Immutable once generated;
// owned by the run that created it.
type Draft struct {
	Persona     string   `json:"persona"`
	Post        string   `json:"post"`
	AltHooks    []string `json:"alt_hooks"`
	ImagePrompt string   `json:"image_prompt"`
	Article     *Article `json:"article"`
}

// Score returns the source score the draft inherits from its article.
func (d *Draft) Score() int {
	if d.Article == nil {
		return 0
	}
	return d.Article.TotalScore
}

// CategoryCount is one entry of the 7-day category balance.
type CategoryCount struct {
	Category string
	Count    int
}
