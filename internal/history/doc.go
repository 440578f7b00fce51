// Package history tracks published drafts in a local JSON file and answers
// the content-calendar questions the pipeline asks: category and persona
// streaks, source cooldowns, and the 7-day category balance.
package history
