// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Uncategorized is the bucket name for records without a category.
const Uncategorized = "Uncategorized"

// Category is a user-defined grouping. Password records reference it by
// Name, so Name is unique (case-insensitively) among categories.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryDraft is the caller-supplied part of a new category.
type CategoryDraft struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// CategoryPatch is a partial category update. Nil fields are kept.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// Apply merges the patch into c and returns the result.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	return c
}

// DefaultCategories are seeded the first time a vault's category list is
// read and nothing has been stored yet.
var DefaultCategories = []CategoryDraft{
	{Name: "Personal", Color: "#10b981", Icon: "👤"},
	{Name: "Work", Color: "#3b82f6", Icon: "💼"},
	{Name: "Social", Color: "#8b5cf6", Icon: "🌐"},
	{Name: "Banking", Color: "#f59e0b", Icon: "🏦"},
	{Name: "Shopping", Color: "#ef4444", Icon: "🛒"},
	{Name: "Entertainment", Color: "#ec4899", Icon: "🎬"},
}
