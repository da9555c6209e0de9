// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"securepass/internal/models"
	"securepass/internal/persist"
)

// PasswordStore manages the password collection. Records are kept newest
// first and capped at models.MaxPasswords.
type PasswordStore struct {
	coll *persist.Collection[models.PasswordRecord]
	now  func() time.Time
}

// NewPasswordStore returns a PasswordStore backed by b.
func NewPasswordStore(b persist.Backend) *PasswordStore {
	return &PasswordStore{
		coll: persist.NewCollection[models.PasswordRecord](b, PasswordsKey, models.MaxPasswords),
		now:  time.Now,
	}
}

// SetClock replaces the clock used for ids, timestamps and expiry.
func (s *PasswordStore) SetClock(now func() time.Time) {
	s.now = now
	s.coll.Now = now
}

// List returns every record, newest first. Unreadable storage yields an
// empty list.
func (s *PasswordStore) List(ctx context.Context) []models.PasswordRecord {
	items, _ := s.coll.Load(ctx)
	return items
}

// Find returns the record with the given id, or nil.
func (s *PasswordStore) Find(ctx context.Context, id string) *models.PasswordRecord {
	for _, r := range s.List(ctx) {
		if r.ID == id {
			return &r
		}
	}
	return nil
}

// ListByCategory filters by category name. An empty name returns every
// record; models.Uncategorized returns records without a category.
func (s *PasswordStore) ListByCategory(ctx context.Context, name string) []models.PasswordRecord {
	all := s.List(ctx)
	if name == "" {
		return all
	}

	var out []models.PasswordRecord
	for _, r := range all {
		if (name == models.Uncategorized && r.Category == "") || r.Category == name {
			out = append(out, r)
		}
	}
	return out
}

// Save stores a new record at the front of the collection and returns it.
func (s *PasswordStore) Save(ctx context.Context, d models.PasswordDraft) (models.PasswordRecord, error) {
	now := s.now()
	rec := models.PasswordRecord{
		ID:        NewID(now),
		Password:  d.Password,
		Label:     d.Label,
		Strength:  d.Strength,
		Length:    d.Length,
		CreatedAt: now.UTC(),
		Settings:  d.Settings,
		Category:  d.Category,
	}

	existing := s.List(ctx)
	if err := s.coll.Save(ctx, append([]models.PasswordRecord{rec}, existing...)); err != nil {
		return models.PasswordRecord{}, fmt.Errorf("save password: %w", err)
	}
	return rec, nil
}

// Prepend stores recs, in order, ahead of the existing records in a
// single write. The collection cap trims the oldest records.
func (s *PasswordStore) Prepend(ctx context.Context, recs []models.PasswordRecord) error {
	if len(recs) == 0 {
		return nil
	}
	existing := s.List(ctx)
	all := make([]models.PasswordRecord, 0, len(recs)+len(existing))
	all = append(all, recs...)
	all = append(all, existing...)
	if err := s.coll.Save(ctx, all); err != nil {
		return fmt.Errorf("prepend passwords: %w", err)
	}
	return nil
}

// Delete removes the record with the given id. Unknown ids are a no-op.
func (s *PasswordStore) Delete(ctx context.Context, id string) error {
	existing := s.List(ctx)
	kept := slices.DeleteFunc(slices.Clone(existing), func(r models.PasswordRecord) bool {
		return r.ID == id
	})
	if len(kept) == len(existing) {
		return nil
	}
	if err := s.coll.Save(ctx, kept); err != nil {
		return fmt.Errorf("delete password: %w", err)
	}
	return nil
}

// Update merges patch into the record with the given id. Unknown ids are
// a no-op.
func (s *PasswordStore) Update(ctx context.Context, id string, patch models.PasswordPatch) error {
	records := s.List(ctx)
	i := slices.IndexFunc(records, func(r models.PasswordRecord) bool { return r.ID == id })
	if i < 0 {
		return nil
	}
	records[i] = patch.Apply(records[i])
	if err := s.coll.Save(ctx, records); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// BulkUpdateCategory sets category on every record whose id is in ids.
// An empty category clears it.
func (s *PasswordStore) BulkUpdateCategory(ctx context.Context, ids []string, category string) error {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	records := s.List(ctx)
	for i := range records {
		if want[records[i].ID] {
			records[i].Category = category
		}
	}
	if err := s.coll.Save(ctx, records); err != nil {
		return fmt.Errorf("bulk update category: %w", err)
	}
	return nil
}

// ClearAll deletes the whole collection.
func (s *PasswordStore) ClearAll(ctx context.Context) error {
	if err := s.coll.Clear(ctx); err != nil {
		return fmt.Errorf("clear passwords: %w", err)
	}
	return nil
}

// recategorize rewrites every record filed under from to to. An empty to
// clears the category. Nothing is written when no record matches.
func (s *PasswordStore) recategorize(ctx context.Context, from, to string) error {
	records := s.List(ctx)
	changed := false
	for i := range records {
		if records[i].Category == from {
			records[i].Category = to
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.coll.Save(ctx, records)
}
