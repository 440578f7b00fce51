package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Pipeline settings shared across packages.
const (
	// LookbackHours is how far back feed and newsletter fetching reaches.
	LookbackHours = 24

	// DraftCount is the number of LinkedIn drafts produced per run.
	DraftCount = 5

	// DedupThreshold is the title similarity above which two articles are
	// considered the same story.
	DedupThreshold = 0.65

	// HistoryLookbackDays is the trailing window for the category balance.
	HistoryLookbackDays = 7

	// MaxSameCategoryStreak and MaxSamePersonaStreak cap consecutive posts
	// with the same category or persona.
	MaxSameCategoryStreak = 2
	MaxSamePersonaStreak  = 3

	// SourceCooldownPosts is how many recent posts a source must sit out
	// before being used again.
	SourceCooldownPosts = 3
)

// Categories is the fixed list of content categories. Category balance output
// is zero-filled from this list, in this order.
var Categories = []string{
	"AI",
	"Sales",
	"AI in Sales",
	"AI in eCommerce",
	"eCommerce",
	"Email Marketing",
	"Behavioural Science",
}

// Persona describes one of the recurring voices drafts are written in.
type Persona struct {
	Name                string
	Description         string
	Tone                string
	PreferredCategories []string
}

// Personas in priority order. Order matters: assignment falls back to the
// first unused persona when no category affinity matches.
var Personas = []Persona{
	{
		Name:                "The eCommerce Observer",
		Description:         "Industry trends, what brands are getting wrong",
		Tone:                "I've been watching this closely and here's what the numbers say...",
		PreferredCategories: []string{"eCommerce", "AI in eCommerce", "Email Marketing"},
	},
	{
		Name:                "The Honest AI User",
		Description:         "Practical AI takes, what actually works, what doesn't",
		Tone:                "I tried this and here's what actually happened...",
		PreferredCategories: []string{"AI", "AI in Sales", "AI in eCommerce"},
	},
	{
		Name:                "The Sales Realist",
		Description:         "Sales truths, discovery challenges, objection handling",
		Tone:                "Here's what nobody in sales wants to admit...",
		PreferredCategories: []string{"Sales", "AI in Sales"},
	},
	{
		Name:                "The Human",
		Description:         "Relatable moments, parenting chaos mixed with professional insight",
		Tone:                "Something happened this week that made me rethink...",
		PreferredCategories: []string{"Behavioural Science", "Sales", "eCommerce"},
	},
}

// DayTopicWeights are day-of-week score multipliers keyed by weekday
// (time.Monday..time.Friday) and category.
var DayTopicWeights = map[time.Weekday]map[string]float64{
	time.Monday:    {"AI in Sales": 1.5, "Sales": 1.3},
	time.Tuesday:   {"AI": 1.5, "AI in eCommerce": 1.3},
	time.Wednesday: {"eCommerce": 1.5, "Email Marketing": 1.3},
	time.Thursday:  {"Behavioural Science": 1.5, "AI": 1.2},
	time.Friday:    {"AI in Sales": 1.3, "Behavioural Science": 1.5},
}

// ScoringCriteria are the per-article scoring dimensions, each 1-10.
var ScoringCriteria = []string{
	"data_richness",
	"contrarian_potential",
	"audience_relevance",
	"timeliness",
	"personal_angle_potential",
}

// MaxTotalScore is the ceiling of an article's total score.
var MaxTotalScore = 10 * len(ScoringCriteria)

// Config carries the environment-driven settings for one run.
type Config struct {
	RecipientEmail    string
	GoogleDocID       string
	GoogleTokenPath   string
	GoogleCredsPath   string
	CohereAPIKey      string
	FeedsConfigPath   string
	NewslettersConfig string
	HistoryPath       string
}

// MissingVarError reports a required environment variable that is not set.
type MissingVarError struct {
	Var string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Var)
}

// Load reads configuration from the environment, loading a .env file first
// if one is present. Nothing is required at load time; callers validate the
// variables their path needs via Require* helpers.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		RecipientEmail:    os.Getenv("RECIPIENT_EMAIL"),
		GoogleDocID:       os.Getenv("GOOGLE_DOC_ID"),
		GoogleTokenPath:   getEnvOrDefault("GOOGLE_TOKEN_PATH", "token.json"),
		GoogleCredsPath:   getEnvOrDefault("GOOGLE_CREDENTIALS_PATH", "credentials.json"),
		CohereAPIKey:      os.Getenv("COHERE_API_KEY"),
		FeedsConfigPath:   getEnvOrDefault("FEEDS_CONFIG", "feeds_config.json"),
		NewslettersConfig: getEnvOrDefault("NEWSLETTERS_CONFIG", "newsletters_config.json"),
		HistoryPath:       getEnvOrDefault("HISTORY_PATH", "post_history.json"),
	}
}

// RequireRecipient validates that a destination address is configured before
// an email send is attempted.
func (c *Config) RequireRecipient() error {
	if c.RecipientEmail == "" {
		return &MissingVarError{Var: "RECIPIENT_EMAIL"}
	}
	return nil
}

// RequireDocID validates that a Google Doc destination is configured before
// a Docs push is attempted.
func (c *Config) RequireDocID() error {
	if c.GoogleDocID == "" {
		return &MissingVarError{Var: "GOOGLE_DOC_ID"}
	}
	return nil
}

// RequireCohereKey validates that the LLM API key is present before
// classification or generation.
func (c *Config) RequireCohereKey() error {
	if c.CohereAPIKey == "" {
		return &MissingVarError{Var: "COHERE_API_KEY"}
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
