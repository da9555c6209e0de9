// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements password and category CRUD on top of a
// persist.Backend. Stores hold no state between calls: every operation
// reads the whole collection, modifies it and writes it back.
package store

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"golang.org/x/text/cases"
)

// Backend keys for the two collections.
const (
	PasswordsKey  = "securepass_passwords"
	CategoriesKey = "securepass_categories"
)

var (
	// ErrDuplicateCategory is returned when a category name is already
	// taken, ignoring case.
	ErrDuplicateCategory = errors.New("category name already exists")

	// ErrCategoryNotFound is returned when deleting an unknown category.
	ErrCategoryNotFound = errors.New("category not found")
)

// NewID returns a base-36 millisecond timestamp followed by a base-36
// random suffix. Unique enough for one client; not a cryptographic id.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + strconv.FormatUint(rand.Uint64(), 36)
}

// FoldKey normalizes a label or category name for case-insensitive
// comparison.
func FoldKey(s string) string {
	return cases.Fold().String(s)
}
