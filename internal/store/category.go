// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"securepass/internal/models"
	"securepass/internal/persist"
)

// CategoryStore manages user-defined categories. Password records refer to
// categories by name, so renames and deletes are pushed through to the
// password collection.
type CategoryStore struct {
	coll      *persist.Collection[models.Category]
	passwords *PasswordStore
	now       func() time.Time
}

// NewCategoryStore returns a CategoryStore backed by b. passwords must use
// the same backend.
func NewCategoryStore(b persist.Backend, passwords *PasswordStore) *CategoryStore {
	return &CategoryStore{
		coll:      persist.NewCollection[models.Category](b, CategoriesKey, 0),
		passwords: passwords,
		now:       time.Now,
	}
}

// SetClock replaces the clock used for ids, timestamps and expiry.
func (s *CategoryStore) SetClock(now func() time.Time) {
	s.now = now
	s.coll.Now = now
}

// List returns all categories in creation order. The first call on a vault
// that has never stored categories seeds and persists the defaults.
func (s *CategoryStore) List(ctx context.Context) []models.Category {
	items, present := s.coll.Load(ctx)
	if present {
		return items
	}

	now := s.now()
	seeded := make([]models.Category, 0, len(models.DefaultCategories))
	for _, d := range models.DefaultCategories {
		seeded = append(seeded, s.build(d, now))
	}
	if err := s.coll.Save(ctx, seeded); err != nil {
		slog.Warn("seeding default categories failed", "error", err)
	}
	return seeded
}

// Find returns the category with the given id, or nil.
func (s *CategoryStore) Find(ctx context.Context, id string) *models.Category {
	for _, c := range s.List(ctx) {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// Add appends a new category. It fails with ErrDuplicateCategory, without
// writing, when the name is already used.
func (s *CategoryStore) Add(ctx context.Context, d models.CategoryDraft) (models.Category, error) {
	existing := s.List(ctx)
	if nameTaken(existing, d.Name, "") {
		return models.Category{}, fmt.Errorf("add category %q: %w", d.Name, ErrDuplicateCategory)
	}

	c := s.build(d, s.now())
	if err := s.coll.Save(ctx, append(existing, c)); err != nil {
		return models.Category{}, fmt.Errorf("add category: %w", err)
	}
	return c, nil
}

// Update merges patch into the category with the given id. Unknown ids are
// a no-op. A rename to a name held by another category fails with
// ErrDuplicateCategory; a successful rename is applied to every password
// filed under the old name.
func (s *CategoryStore) Update(ctx context.Context, id string, patch models.CategoryPatch) error {
	categories := s.List(ctx)
	i := slices.IndexFunc(categories, func(c models.Category) bool { return c.ID == id })
	if i < 0 {
		return nil
	}

	old := categories[i]
	updated := patch.Apply(old)
	if updated.Name != old.Name {
		if nameTaken(categories, updated.Name, id) {
			return fmt.Errorf("rename category %q: %w", updated.Name, ErrDuplicateCategory)
		}
		if err := s.passwords.recategorize(ctx, old.Name, updated.Name); err != nil {
			return fmt.Errorf("rename category: %w", err)
		}
	}

	categories[i] = updated
	if err := s.coll.Save(ctx, categories); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete clears the category from every password that references it and
// then removes it. Unknown ids fail with ErrCategoryNotFound.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	categories := s.List(ctx)
	i := slices.IndexFunc(categories, func(c models.Category) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("delete category %s: %w", id, ErrCategoryNotFound)
	}

	if err := s.passwords.recategorize(ctx, categories[i].Name, ""); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if err := s.coll.Save(ctx, slices.Delete(categories, i, i+1)); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *CategoryStore) build(d models.CategoryDraft, now time.Time) models.Category {
	return models.Category{
		ID:        NewID(now),
		Name:      d.Name,
		Color:     d.Color,
		Icon:      d.Icon,
		CreatedAt: now.UTC(),
	}
}

// nameTaken reports whether name is used by a category other than exceptID.
func nameTaken(categories []models.Category, name, exceptID string) bool {
	key := FoldKey(name)
	for _, c := range categories {
		if c.ID != exceptID && FoldKey(c.Name) == key {
			return true
		}
	}
	return false
}
