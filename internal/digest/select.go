package digest

import (
	"errors"

	"github.com/rwestgarth/linkedin-engine/internal/content"
)

// ErrNoDrafts reports that recommendation or rendering was asked for an
// empty draft set. Upstream guarantees five drafts per run, but the guard
// stays.
var ErrNoDrafts = errors.New("no drafts available")

// Recommend returns the draft with the highest source score and its index.
// Ties resolve to the first occurrence. No side effects.
func Recommend(drafts []*content.Draft) (*content.Draft, int, error) {
	if len(drafts) == 0 {
		return nil, -1, ErrNoDrafts
	}

	best := 0
	for i, d := range drafts {
		if d.Score() > drafts[best].Score() {
			best = i
		}
	}
	return drafts[best], best, nil
}
