package store

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"securepass/internal/models"
	"securepass/internal/stats"
)

// SortField selects the ordering applied by Filter.
type SortField string

const (
	SortNone     SortField = ""
	SortDate     SortField = "date"
	SortStrength SortField = "strength"
	SortLabel    SortField = "label"
)

// Query is a dashboard view over the password collection.
type Query struct {
	// Search matches label substrings, ignoring case.
	Search string
	// Strength is "", "all" or a band name (weak, fair, good, strong).
	Strength string
	// Category is "", "all", "uncategorized" or an exact category name.
	Category string
	Sort     SortField
	Desc     bool
}

// Query returns the records matching q.
func (s *PasswordStore) Query(ctx context.Context, q Query) []models.PasswordRecord {
	return Filter(s.List(ctx), q)
}

// Filter applies q to records without modifying them. With SortNone the
// stored newest-first order is kept.
func Filter(records []models.PasswordRecord, q Query) []models.PasswordRecord {
	search := FoldKey(q.Search)
	tier, byTier := stats.ParseTier(q.Strength)

	out := make([]models.PasswordRecord, 0, len(records))
	for _, r := range records {
		if search != "" && !strings.Contains(FoldKey(r.Label), search) {
			continue
		}
		if byTier && stats.TierOf(r.Strength) != tier {
			continue
		}
		switch q.Category {
		case "", "all":
		case "uncategorized":
			if r.Category != "" {
				continue
			}
		default:
			if r.Category != q.Category {
				continue
			}
		}
		out = append(out, r)
	}

	var cmp func(a, b models.PasswordRecord) int
	switch q.Sort {
	case SortDate:
		cmp = func(a, b models.PasswordRecord) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortStrength:
		cmp = func(a, b models.PasswordRecord) int { return a.Strength - b.Strength }
	case SortLabel:
		col := collate.New(language.English)
		cmp = func(a, b models.PasswordRecord) int { return col.CompareString(a.Label, b.Label) }
	default:
		return out
	}

	slices.SortStableFunc(out, func(a, b models.PasswordRecord) int {
		if q.Desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}
