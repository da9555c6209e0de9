// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package stats aggregates password records into strength bands. All
// functions are pure: they work on snapshots and never touch storage.
package stats

import (
	"strings"

	"securepass/internal/models"
)

// Tier is a strength band.
type Tier int

// Bands, by lower bound: weak [0,30), fair [30,60), good [60,80),
// strong [80,100].
const (
	TierWeak Tier = iota
	TierFair
	TierGood
	TierStrong
)

var tierNames = [...]string{"Weak", "Fair", "Good", "Strong"}

// TierOf returns the band for a 0..100 strength score. Out-of-range
// scores fall into the nearest band.
func TierOf(strength int) Tier {
	switch {
	case strength < 30:
		return TierWeak
	case strength < 60:
		return TierFair
	case strength < 80:
		return TierGood
	default:
		return TierStrong
	}
}

// String returns the display name (Weak, Fair, Good, Strong).
func (t Tier) String() string {
	if t < TierWeak || t > TierStrong {
		return "Unknown"
	}
	return tierNames[t]
}

// ParseTier maps a case-insensitive band name to its Tier.
func ParseTier(s string) (Tier, bool) {
	for i, name := range tierNames {
		if strings.EqualFold(s, name) {
			return Tier(i), true
		}
	}
	return 0, false
}

// Breakdown counts records per band. Weak+Fair+Good+Strong == Total.
type Breakdown struct {
	Total  int `json:"total"`
	Weak   int `json:"weak"`
	Fair   int `json:"fair"`
	Good   int `json:"good"`
	Strong int `json:"strong"`
}

func (b *Breakdown) add(strength int) {
	b.Total++
	switch TierOf(strength) {
	case TierWeak:
		b.Weak++
	case TierFair:
		b.Fair++
	case TierGood:
		b.Good++
	case TierStrong:
		b.Strong++
	}
}

// Summarize returns the overall band breakdown.
func Summarize(records []models.PasswordRecord) Breakdown {
	var b Breakdown
	for _, r := range records {
		b.add(r.Strength)
	}
	return b
}

// ByCategory returns one breakdown per known category name plus
// models.Uncategorized, all present even when empty. Records naming a
// category that no longer exists get an ad hoc bucket under that name.
func ByCategory(records []models.PasswordRecord, categories []models.Category) map[string]Breakdown {
	out := make(map[string]Breakdown, len(categories)+1)
	for _, c := range categories {
		out[c.Name] = Breakdown{}
	}
	out[models.Uncategorized] = Breakdown{}

	for _, r := range records {
		name := r.Category
		if name == "" {
			name = models.Uncategorized
		}
		b := out[name]
		b.add(r.Strength)
		out[name] = b
	}
	return out
}
