package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rwestgarth/linkedin-engine/internal/content"
)

// dateLayout is the date-only format posts are recorded with.
const dateLayout = "2006-01-02"

// Post is one recorded published draft.
type Post struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Persona  string `json:"persona"`
	Source   string `json:"source"`
	Angle    string `json:"angle"`
}

// Store holds the posting history backed by a JSON file.
type Store struct {
	path  string
	Posts []Post `json:"posts"`
}

type historyFile struct {
	Posts []Post `json:"posts"`
}

// Load reads the history file. A missing or corrupt file yields an empty
// history rather than an error; the store recreates it on save.
func Load(path string) *Store {
	store := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return store
	}

	var file historyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return store
	}
	store.Posts = file.Posts
	return store
}

// Save writes the history back to its file.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(historyFile{Posts: s.Posts}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing history %s: %w", s.path, err)
	}
	return nil
}

// Record appends one published post.
func (s *Store) Record(date time.Time, category, persona, source, angle string) {
	s.Posts = append(s.Posts, Post{
		Date:     date.Format(dateLayout),
		Category: category,
		Persona:  persona,
		Source:   source,
		Angle:    angle,
	})
}

// RecentPosts returns posts from the trailing window of days ending at now.
func (s *Store) RecentPosts(now time.Time, days int) []Post {
	cutoff := now.AddDate(0, 0, -days).Format(dateLayout)
	var recent []Post
	for _, p := range s.Posts {
		if p.Date >= cutoff {
			recent = append(recent, p)
		}
	}
	return recent
}

// LastN returns the most recent n posts by date order.
func (s *Store) LastN(n int) []Post {
	sorted := make([]Post, len(s.Posts))
	copy(sorted, s.Posts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// WouldBreakCategoryStreak reports whether posting this category would
// extend a run of identical categories past maxStreak.
func (s *Store) WouldBreakCategoryStreak(category string, maxStreak int) bool {
	recent := s.LastN(maxStreak)
	if len(recent) == 0 {
		return false
	}
	for _, p := range recent {
		if p.Category != category {
			return false
		}
	}
	return true
}

// WouldBreakPersonaStreak reports whether posting as this persona would
// extend a run of identical personas past maxStreak.
func (s *Store) WouldBreakPersonaStreak(persona string, maxStreak int) bool {
	recent := s.LastN(maxStreak)
	if len(recent) < maxStreak {
		return false
	}
	for _, p := range recent {
		if p.Persona != persona {
			return false
		}
	}
	return true
}

// SourceOnCooldown reports whether the source appeared in the last
// cooldownPosts posts.
func (s *Store) SourceOnCooldown(source string, cooldownPosts int) bool {
	for _, p := range s.LastN(cooldownPosts) {
		if p.Source == source {
			return true
		}
	}
	return false
}

// CategoryDistribution aggregates post counts per category over the trailing
// window. Every known category is present, zero-filled, in the given order;
// labels outside the known list are dropped.
func (s *Store) CategoryDistribution(now time.Time, days int, categories []string) []content.CategoryCount {
	counts := make(map[string]int)
	for _, p := range s.RecentPosts(now, days) {
		counts[p.Category]++
	}

	dist := make([]content.CategoryCount, 0, len(categories))
	for _, c := range categories {
		dist = append(dist, content.CategoryCount{Category: c, Count: counts[c]})
	}
	return dist
}
