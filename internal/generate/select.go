package generate

import (
	"sort"
	"time"

	"github.com/rwestgarth/linkedin-engine/internal/config"
	"github.com/rwestgarth/linkedin-engine/internal/content"
	"github.com/rwestgarth/linkedin-engine/internal/history"
)

type weighted struct {
	article *content.Article
	score   float64
}

// SelectStories picks the top articles for the day, applying day-of-week
// topic weights, in-batch category diversity, the category streak rule and
// the source cooldown. If the constraints leave fewer than count stories,
// diversity is relaxed to fill the batch.
func SelectStories(articles []*content.Article, hist *history.Store, now time.Time, count int) []*content.Article {
	weights := config.DayTopicWeights[now.Weekday()]

	scored := make([]weighted, 0, len(articles))
	for _, a := range articles {
		multiplier := 1.0
		if m, ok := weights[a.Category]; ok {
			multiplier = m
		}
		scored = append(scored, weighted{article: a, score: float64(a.TotalScore) * multiplier})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	selected := make([]*content.Article, 0, count)
	usedCategories := make(map[string]bool)

	for _, w := range scored {
		if len(selected) >= count {
			break
		}
		a := w.article

		if usedCategories[a.Category] && len(selected) < count-1 {
			continue
		}
		if hist.WouldBreakCategoryStreak(a.Category, config.MaxSameCategoryStreak) {
			continue
		}
		if hist.SourceOnCooldown(a.Source, config.SourceCooldownPosts) {
			continue
		}

		selected = append(selected, a)
		usedCategories[a.Category] = true
	}

	// Not enough under the diversity constraints: fill with the best rest.
	if len(selected) < count {
		for _, w := range scored {
			if len(selected) >= count {
				break
			}
			if !contains(selected, w.article) {
				selected = append(selected, w.article)
			}
		}
	}

	if len(selected) > count {
		selected = selected[:count]
	}
	return selected
}

// AssignPersonas matches one persona to each article by category affinity,
// respecting the persona streak rule and using each persona at most once per
// batch. Returns one persona name per article, in order.
func AssignPersonas(articles []*content.Article, hist *history.Store) []string {
	assignments := make([]string, 0, len(articles))
	used := make(map[string]bool)

	for _, a := range articles {
		best := ""
		bestScore := -1

		for _, p := range config.Personas {
			if used[p.Name] {
				continue
			}
			if hist.WouldBreakPersonaStreak(p.Name, config.MaxSamePersonaStreak) {
				continue
			}

			score := affinity(p, a.Category)
			if score > bestScore {
				bestScore = score
				best = p.Name
			}
		}

		if best == "" {
			best = firstUnused(used)
		}

		assignments = append(assignments, best)
		used[best] = true
	}
	return assignments
}

// affinity scores how well a persona fits a category: 3 for its top
// preference, 2 for any preferred category, 0 otherwise.
func affinity(p config.Persona, category string) int {
	for i, c := range p.PreferredCategories {
		if c == category {
			if i == 0 {
				return 3
			}
			return 2
		}
	}
	return 0
}

func firstUnused(used map[string]bool) string {
	for _, p := range config.Personas {
		if !used[p.Name] {
			return p.Name
		}
	}
	return config.Personas[0].Name
}

func contains(articles []*content.Article, a *content.Article) bool {
	for _, x := range articles {
		if x == a {
			return true
		}
	}
	return false
}
