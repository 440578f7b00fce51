package pipeline

import "fmt"

// Mode selects which steps a run executes. It is resolved once from the
// CLI flags before any work starts, so every step can check the mode
// instead of a bag of booleans.
type Mode int

const (
	// Normal runs every step: fetch, process, classify, generate, Docs
	// push, email digest and history update.
	Normal Mode = iota
	// DryRun renders everything, performs no external sends and skips the
	// history update.
	DryRun
	// EmailOnly sends the email digest but skips the Docs push and the
	// history update.
	EmailOnly
	// NoEmail runs every step except the email digest.
	NoEmail
	// FeedsOnly stops after fetch and processing and prints the articles.
	FeedsOnly
)

// ResolveMode maps the CLI flags to a run mode. Combining --email-only
// with --no-email is a usage error.
func ResolveMode(dryRun, emailOnly, noEmail, feedsOnly bool) (Mode, error) {
	if emailOnly && noEmail {
		return Normal, fmt.Errorf("--email-only and --no-email cannot be combined")
	}
	switch {
	case feedsOnly:
		return FeedsOnly, nil
	case dryRun:
		return DryRun, nil
	case emailOnly:
		return EmailOnly, nil
	case noEmail:
		return NoEmail, nil
	}
	return Normal, nil
}

func (m Mode) String() string {
	switch m {
	case DryRun:
		return "dry-run"
	case EmailOnly:
		return "email-only"
	case NoEmail:
		return "no-email"
	case FeedsOnly:
		return "feeds-only"
	default:
		return "normal"
	}
}

// SendsDocs reports whether the mode pushes the digest to Google Docs.
func (m Mode) SendsDocs() bool { return m == Normal || m == NoEmail }

// SendsEmail reports whether the mode sends the email digest.
func (m Mode) SendsEmail() bool { return m == Normal || m == EmailOnly }

// RecordsHistory reports whether the mode updates the post history file.
func (m Mode) RecordsHistory() bool { return m == Normal || m == NoEmail }
