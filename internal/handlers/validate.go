package handlers

import (
	"strings"
	"unicode/utf8"

	"securepass/internal/models"
)

// Validation limits for password and category fields.
const (
	maxLabelLen        = 200
	maxPasswordLen     = 1_024
	maxCategoryNameLen = 50
	maxIconLen         = 16
	maxBulkIDs         = models.MaxPasswords
)

// validateLabel checks a password label.
func validateLabel(label string) string {
	if strings.TrimSpace(label) == "" {
		return "Label is required."
	}
	if utf8.RuneCountInString(label) > maxLabelLen {
		return "Label is too long (max 200 characters)."
	}
	return ""
}

// validateSecret checks the stored password value.
func validateSecret(password string) string {
	if password == "" {
		return "Password is required."
	}
	if utf8.RuneCountInString(password) > maxPasswordLen {
		return "Password is too long (max 1,024 characters)."
	}
	return ""
}

// validateScore checks strength and length values when present.
func validateScore(strength, length *int) string {
	if strength != nil && (*strength < 0 || *strength > 100) {
		return "Strength must be between 0 and 100."
	}
	if length != nil && *length < 0 {
		return "Length cannot be negative."
	}
	return ""
}

// validateCategoryRef checks a category name stored on a password.
func validateCategoryRef(name string) string {
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return "Category is too long (max 50 characters)."
	}
	return ""
}

// validatePasswordPatch checks every field a patch sets.
func validatePasswordPatch(p models.PasswordPatch) string {
	if p.Label != nil {
		if msg := validateLabel(*p.Label); msg != "" {
			return msg
		}
	}
	if p.Password != nil {
		if msg := validateSecret(*p.Password); msg != "" {
			return msg
		}
	}
	if msg := validateScore(p.Strength, p.Length); msg != "" {
		return msg
	}
	if p.Category != nil {
		return validateCategoryRef(*p.Category)
	}
	return ""
}

// validateCategoryName checks a category name.
func validateCategoryName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Category name is required."
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return "Category name is too long (max 50 characters)."
	}
	if strings.EqualFold(name, models.Uncategorized) {
		return "Category name is reserved."
	}
	return ""
}

// validateColor accepts #rgb and #rrggbb hex colors.
func validateColor(color string) string {
	if (len(color) != 4 && len(color) != 7) || color[0] != '#' {
		return "Color must be a hex value like #3b82f6."
	}
	for _, c := range color[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "Color must be a hex value like #3b82f6."
		}
	}
	return ""
}

// validateIcon checks the category icon, usually a single emoji.
func validateIcon(icon string) string {
	if icon == "" {
		return "Icon is required."
	}
	if utf8.RuneCountInString(icon) > maxIconLen {
		return "Icon is too long (max 16 characters)."
	}
	return ""
}

// validateCategoryDraft checks a new category.
func validateCategoryDraft(d models.CategoryDraft) string {
	if msg := validateCategoryName(d.Name); msg != "" {
		return msg
	}
	if msg := validateColor(d.Color); msg != "" {
		return msg
	}
	return validateIcon(d.Icon)
}

// validateCategoryPatch checks every field a category patch sets.
func validateCategoryPatch(p models.CategoryPatch) string {
	if p.Name != nil {
		if msg := validateCategoryName(*p.Name); msg != "" {
			return msg
		}
	}
	if p.Color != nil {
		if msg := validateColor(*p.Color); msg != "" {
			return msg
		}
	}
	if p.Icon != nil {
		return validateIcon(*p.Icon)
	}
	return ""
}
