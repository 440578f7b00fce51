// Package classify assigns each article a category, five criterion scores
// and a one-line summary via a single batched LLM chat call.
package classify
