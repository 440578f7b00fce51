// Package digest renders a run's drafts into the three delivery formats:
// HTML email body, plain-text fallback and the Google Doc block. Rendering
// is a pure function of its inputs so dry-run previews and test fixtures
// are byte-stable.
package digest
