// Package pipeline orchestrates one end-to-end run of the content engine:
// fetch articles from the configured sources, clean and deduplicate them,
// classify and score them, select stories and personas against recent post
// history, generate drafts, render the digest and deliver it.
//
// The run mode (normal, dry-run, email-only, no-email, feeds-only) is
// resolved once from the CLI flags and fixes the step list up front. The
// Docs and email deliveries are independent channels: each produces an
// explicit ChannelResult in the run summary, and a failure in one never
// aborts the other.
package pipeline
