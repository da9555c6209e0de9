// Package generator produces random passwords and scores their strength.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"securepass/internal/models"
)

// Length bounds and default.
const (
	MinLength     = 4
	MaxLength     = 128
	DefaultLength = 16
)

const (
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower   = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
	symbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	similar = "il1Lo0O"
)

var (
	// ErrEmptyCharset is returned when every character class is disabled.
	ErrEmptyCharset = errors.New("select at least one character type")

	// ErrLength is returned for lengths outside MinLength..MaxLength.
	ErrLength = fmt.Errorf("length must be between %d and %d", MinLength, MaxLength)
)

// Charset returns the alphabet selected by s.
func Charset(s models.GenerationSettings) string {
	var b strings.Builder
	if s.IncludeUppercase {
		b.WriteString(upper)
	}
	if s.IncludeLowercase {
		b.WriteString(lower)
	}
	if s.IncludeNumbers {
		b.WriteString(digits)
	}
	if s.IncludeSymbols {
		b.WriteString(symbols)
	}
	set := b.String()
	if s.ExcludeSimilar {
		set = strings.Map(func(r rune) rune {
			if strings.ContainsRune(similar, r) {
				return -1
			}
			return r
		}, set)
	}
	return set
}

// Generate returns a password of length characters drawn uniformly from
// the alphabet selected by s.
func Generate(length int, s models.GenerationSettings) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", ErrLength
	}
	set := Charset(s)
	if set == "" {
		return "", ErrEmptyCharset
	}

	n := big.NewInt(int64(len(set)))
	out := make([]byte, length)
	for i := range out {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		out[i] = set[idx.Int64()]
	}
	return string(out), nil
}

// Strength scores pwd from 0 to 100: up to 40 points for length and 15
// for each character class present.
func Strength(pwd string) int {
	score := 0
	n := len([]rune(pwd))
	if n >= 8 {
		score += 20
	}
	if n >= 12 {
		score += 10
	}
	if n >= 16 {
		score += 10
	}

	var hasLower, hasUpper, hasDigit, hasOther bool
	for _, r := range pwd {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}
	for _, has := range []bool{hasLower, hasUpper, hasDigit, hasOther} {
		if has {
			score += 15
		}
	}
	return min(score, 100)
}
