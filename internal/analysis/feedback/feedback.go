package feedback

import (
	"fmt"
	"sort"

	"github.com/2beens/formcoach/internal/analysis/faults"
)

// MaxItems caps the feedback list so the athlete is not flooded after a
// bad set. Severity decides what survives the cut.
const MaxItems = 5

// Item is one user-facing feedback entry of an analysis result.
type Item struct {
	ID         string              `json:"id"`
	Type       faults.FeedbackType `json:"type"`
	Severity   faults.Severity     `json:"severity"`
	Area       string              `json:"area"`
	Message    string              `json:"message"`
	Suggestion string              `json:"suggestion"`
}

// Build orders candidates by descending severity, breaking ties by
// detection order, and truncates to MaxItems. If any positive candidate
// was detected, at least one survives the cut, so a set with faults
// still tells the athlete what they did right.
func Build(candidates []faults.Candidate) []Item {
	ordered := make([]faults.Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Severity.Rank() > ordered[j].Severity.Rank()
	})

	items := make([]Item, 0, MaxItems)
	for _, c := range ordered {
		if len(items) == MaxItems {
			break
		}
		items = append(items, toItem(c))
	}

	if !hasPositive(items) {
		for _, c := range ordered {
			if c.Type != faults.TypePositive {
				continue
			}
			if len(items) == MaxItems {
				items[MaxItems-1] = toItem(c)
			} else {
				items = append(items, toItem(c))
			}
			break
		}
	}
	return items
}

func hasPositive(items []Item) bool {
	for _, it := range items {
		if it.Type == faults.TypePositive {
			return true
		}
	}
	return false
}

// toItem derives a stable ID from the classification itself, keeping the
// whole analysis deterministic for identical input.
func toItem(c faults.Candidate) Item {
	return Item{
		ID:         fmt.Sprintf("%s-%s", c.Dimension, c.Label),
		Type:       c.Type,
		Severity:   c.Severity,
		Area:       c.Area,
		Message:    c.Message,
		Suggestion: c.Suggestion,
	}
}
