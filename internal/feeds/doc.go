// Package feeds fetches source articles from configured RSS and Atom feeds,
// filtered to the pipeline's lookback window.
package feeds
