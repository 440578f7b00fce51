// Package generate selects the day's stories, assigns drafting personas and
// produces the five LinkedIn post drafts via an LLM chat call per story.
package generate
