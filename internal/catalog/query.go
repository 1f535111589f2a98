// Package catalog implements the browse view over the item collection:
// an in-memory filter and stable sort producing the same ordering for the
// same inputs. It never mutates its input, so concurrent readers need no
// synchronization.
package catalog

import (
	"sort"
	"strings"
	"time"

	"rewear/internal/domain"
)

// Sort keys accepted by Query. Anything else falls back to SortNewest.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortPointsLow  = "points-low"
	SortPointsHigh = "points-high"
)

var SortKeys = []string{SortNewest, SortOldest, SortPointsLow, SortPointsHigh}

type Params struct {
	Text      string
	Category  string // "" or "All" means no filter
	Condition string // "" or "All" means no filter
	Sort      string
}

// Query returns the available items matching p, ordered by p.Sort.
// Filters apply in a fixed order: status, text, category, condition.
// Ties keep the relative order of the input slice.
func Query(items []domain.Item, p Params) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	text := strings.ToLower(strings.TrimSpace(p.Text))

	for _, it := range items {
		if it.Status != domain.StatusAvailable {
			continue
		}
		if text != "" && !matchesText(it, text) {
			continue
		}
		if filterSet(p.Category) && it.Category != p.Category {
			continue
		}
		if filterSet(p.Condition) && it.Condition != p.Condition {
			continue
		}
		out = append(out, it)
	}

	sortItems(out, p.Sort)
	return out
}

func filterSet(v string) bool {
	return v != "" && v != domain.CategoryAll
}

// matchesText reports whether the lowercased needle is a substring of the
// title or description, or equals one of the tags (case-insensitive).
func matchesText(it domain.Item, needle string) bool {
	if strings.Contains(strings.ToLower(it.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Description), needle) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.ToLower(tag) == needle {
			return true
		}
	}
	return false
}

func sortItems(items []domain.Item, key string) {
	switch key {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return when(items[i].CreatedAt).Before(when(items[j].CreatedAt))
		})
	case SortPointsLow:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PointValue < items[j].PointValue
		})
	case SortPointsHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PointValue > items[j].PointValue
		})
	default: // SortNewest
		sort.SliceStable(items, func(i, j int) bool {
			return when(items[j].CreatedAt).Before(when(items[i].CreatedAt))
		})
	}
}

// Timestamp layouts seen in the store: SQLite CURRENT_TIMESTAMP, seeded
// date-only values, and RFC 3339 from API clients.
var whenLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

func when(s string) time.Time {
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
