// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"securepass/internal/models"
)

func categoryByName(t *testing.T, s *CategoryStore, name string) models.Category {
	t.Helper()
	for _, c := range s.List(context.Background()) {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q not found", name)
	return models.Category{}
}

func TestCategoryStoreSeedsDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.categories.List(ctx)
	if len(first) != len(models.DefaultCategories) {
		t.Fatalf("len = %d, want %d", len(first), len(models.DefaultCategories))
	}
	for i, c := range first {
		want := models.DefaultCategories[i]
		if c.Name != want.Name || c.Color != want.Color || c.Icon != want.Icon {
			t.Errorf("category %d: got %+v, want %+v", i, c, want)
		}
		if c.ID == "" || c.CreatedAt.IsZero() {
			t.Errorf("category %d missing id or createdAt: %+v", i, c)
		}
	}

	second := env.categories.List(ctx)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("defaults reseeded: %s != %s", first[i].ID, second[i].ID)
		}
	}
}

func TestCategoryStoreNoReseedAfterDeletingAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, c := range env.categories.List(ctx) {
		if err := env.categories.Delete(ctx, c.ID); err != nil {
			t.Fatalf("Delete %s: %v", c.Name, err)
		}
	}
	if got := env.categories.List(ctx); len(got) != 0 {
		t.Errorf("expected empty list after deleting every category, got %d", len(got))
	}
}

func TestCategoryStoreAdd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.categories.Add(ctx, models.CategoryDraft{Name: "Travel", Color: "#000000", Icon: "✈️"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	list := env.categories.List(ctx)
	if last := list[len(list)-1]; last.ID != c.ID || last.Name != "Travel" {
		t.Errorf("expected Travel appended last, got %+v", last)
	}
}

func TestCategoryStoreAddDuplicate(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"exact", "Work"},
		{"lower", "work"},
		{"upper", "WORK"},
		{"mixed", "wOrK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			env.categories.List(ctx)
			before := env.raw(t, CategoriesKey)

			_, err := env.categories.Add(ctx, models.CategoryDraft{Name: tt.in, Color: "#fff", Icon: "x"})
			if !errors.Is(err, ErrDuplicateCategory) {
				t.Fatalf("err = %v, want ErrDuplicateCategory", err)
			}
			if after := env.raw(t, CategoriesKey); after != before {
				t.Error("duplicate add must not modify storage")
			}
		})
	}
}

func TestCategoryStoreDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := categoryByName(t, env.categories, "Work")

	d := draft("a", 10)
	d.Category = "Work"
	a := mustSave(t, env.passwords, d)
	d = draft("b", 10)
	d.Category = "Banking"
	b := mustSave(t, env.passwords, d)

	if err := env.categories.Delete(ctx, work.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got := env.passwords.Find(ctx, a.ID); got.Category != "" {
		t.Errorf("password a category = %q, want empty", got.Category)
	}
	if got := env.passwords.Find(ctx, b.ID); got.Category != "Banking" {
		t.Errorf("password b category = %q, want Banking", got.Category)
	}
	if env.categories.Find(ctx, work.ID) != nil {
		t.Error("Work still listed")
	}
	if n := len(env.categories.List(ctx)); n != len(models.DefaultCategories)-1 {
		t.Errorf("len = %d, want %d", n, len(models.DefaultCategories)-1)
	}
}

func TestCategoryStoreDeleteUnknown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.categories.List(ctx)
	before := env.raw(t, CategoriesKey)

	if err := env.categories.Delete(ctx, "missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
	if after := env.raw(t, CategoriesKey); after != before {
		t.Error("storage changed")
	}
}

func TestCategoryStoreDeleteKeepsCategoryWhenCascadeFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := categoryByName(t, env.categories, "Work")

	d := draft("a", 10)
	d.Category = "Work"
	mustSave(t, env.passwords, d)

	env.backend.failWrites = true
	if err := env.categories.Delete(ctx, work.ID); !errors.Is(err, errWriteRefused) {
		t.Fatalf("err = %v, want errWriteRefused", err)
	}
	env.backend.failWrites = false

	if env.categories.Find(ctx, work.ID) == nil {
		t.Error("category removed despite failed cascade")
	}
}

func TestCategoryStoreUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := categoryByName(t, env.categories, "Work")

	color := "#123456"
	if err := env.categories.Update(ctx, work.ID, models.CategoryPatch{Color: &color}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := env.categories.Find(ctx, work.ID)
	if got.Color != "#123456" || got.Name != "Work" || got.Icon != work.Icon {
		t.Errorf("unexpected category after update: %+v", got)
	}

	if err := env.categories.Update(ctx, "missing", models.CategoryPatch{Color: &color}); err != nil {
		t.Errorf("Update unknown id: %v", err)
	}
}

func TestCategoryStoreRenameCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := categoryByName(t, env.categories, "Work")

	d := draft("a", 10)
	d.Category = "Work"
	a := mustSave(t, env.passwords, d)

	name := "Office"
	if err := env.categories.Update(ctx, work.ID, models.CategoryPatch{Name: &name}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := env.passwords.Find(ctx, a.ID); got.Category != "Office" {
		t.Errorf("password category = %q, want Office", got.Category)
	}
}

func TestCategoryStoreRenameDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := categoryByName(t, env.categories, "Work")

	name := "banking"
	err := env.categories.Update(ctx, work.ID, models.CategoryPatch{Name: &name})
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("err = %v, want ErrDuplicateCategory", err)
	}
	if got := env.categories.Find(ctx, work.ID); got.Name != "Work" {
		t.Errorf("name = %q, want Work", got.Name)
	}

	// Changing only the case of its own name is allowed.
	name = "WORK"
	if err := env.categories.Update(ctx, work.ID, models.CategoryPatch{Name: &name}); err != nil {
		t.Errorf("self rename: %v", err)
	}
}
