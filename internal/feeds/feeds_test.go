package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rssBody(pubDates ...string) string {
	items := ""
	for i, d := range pubDates {
		items += fmt.Sprintf(`<item>
  <title>Story %d</title>
  <link>https://example.com/%d</link>
  <description>Summary %d</description>
  <pubDate>%s</pubDate>
</item>`, i+1, i+1, i+1, d)
	}
	return `<?xml version="1.0"?><rss version="2.0"><channel><title>Test Feed</title>` + items + `</channel></rss>`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.NewFile(0, os.DevNull), &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func TestFetchFiltersByCutoff(t *testing.T) {
	recent := time.Now().UTC().Format(time.RFC1123Z)
	old := time.Now().UTC().Add(-72 * time.Hour).Format(time.RFC1123Z)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody(recent, old))
	}))
	defer srv.Close()

	f := NewFetcher([]FeedConfig{{Name: "Test Feed", URL: srv.URL, CategoryHint: "AI"}}, discardLogger())

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	articles, err := f.Fetch(context.Background(), cutoff)
	require.NoError(t, err)

	require.Len(t, articles, 1)
	assert.Equal(t, "Story 1", articles[0].Title)
	assert.Equal(t, "Test Feed", articles[0].Source)
	assert.Equal(t, "AI", articles[0].CategoryHint)
}

func TestFetchFallsBackToSiblingPath(t *testing.T) {
	recent := time.Now().UTC().Format(time.RFC1123Z)

	mux := http.NewServeMux()
	mux.HandleFunc("/newsletter/feed", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/newsletter/rss", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody(recent))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher([]FeedConfig{{Name: "Beehiiv", URL: srv.URL + "/newsletter/feed"}}, discardLogger())

	articles, err := f.Fetch(context.Background(), time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestFetchSkipsFailingFeed(t *testing.T) {
	recent := time.Now().UTC().Format(time.RFC1123Z)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody(recent))
	}))
	defer srv.Close()

	f := NewFetcher([]FeedConfig{
		{Name: "Dead", URL: "http://127.0.0.1:1/rss2"},
		{Name: "Alive", URL: srv.URL},
	}, discardLogger())

	articles, err := f.Fetch(context.Background(), time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Alive", articles[0].Source)
}

func TestCandidateURLs(t *testing.T) {
	assert.Equal(t, []string{"https://x.com/feed", "https://x.com/rss"}, candidateURLs("https://x.com/feed"))
	assert.Equal(t, []string{"https://x.com/rss", "https://x.com/feed"}, candidateURLs("https://x.com/rss"))
	assert.Equal(t, []string{"https://x.com/atom.xml"}, candidateURLs("https://x.com/atom.xml"))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"feeds":[{"name":"A","url":"https://a/feed","category_hint":"Sales"}]}`), 0644))

	feeds, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, feeds, 1)
	assert.Equal(t, "Sales", feeds[0].CategoryHint)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
