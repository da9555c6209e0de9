// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package transfer renders password records as JSON, CSV or plain-text
// backups and imports JSON backups back into a password store.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"securepass/internal/models"
	"securepass/internal/stats"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
)

// ExportVersion is written into every JSON backup.
const ExportVersion = "1.0"

// ErrUnsupportedFormat is returned for any format other than json, csv or txt.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCSV, FormatTXT:
		return f, nil
	default:
		return "", fmt.Errorf("format %q: %w", s, ErrUnsupportedFormat)
	}
}

// MimeType returns the content type served for f.
func MimeType(f Format) string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	default:
		return "text/plain"
	}
}

// BackupFilename returns securepass-backup-YYYY-MM-DD-HH-MM-SS.<format>.
// The date is taken in UTC and the time of day in now's own location.
func BackupFilename(f Format, now time.Time) string {
	return fmt.Sprintf("securepass-backup-%s-%s.%s",
		now.UTC().Format("2006-01-02"), now.Format("15-04-05"), f)
}

// ExportOptions controls what an export contains.
type ExportOptions struct {
	Format           Format   `json:"format"`
	IncludePasswords bool     `json:"includePasswords"`
	IncludeMetadata  bool     `json:"includeMetadata"`
	SelectedIDs      []string `json:"selectedIds,omitempty"`
}

// Select returns the records whose id is in ids, keeping their order.
// A nil ids selects everything.
func Select(records []models.PasswordRecord, ids []string) []models.PasswordRecord {
	if ids == nil {
		return records
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]models.PasswordRecord, 0, len(ids))
	for _, r := range records {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// Exporter renders backups. Dates in CSV and TXT output are shown in
// Location.
type Exporter struct {
	Location *time.Location
	Now      func() time.Time
}

// NewExporter returns an Exporter using the local time zone and clock.
func NewExporter() *Exporter {
	return &Exporter{Location: time.Local, Now: time.Now}
}

// Export selects records per opts and renders them in opts.Format.
func (e *Exporter) Export(records []models.PasswordRecord, opts ExportOptions) ([]byte, error) {
	selected := Select(records, opts.SelectedIDs)

	switch opts.Format {
	case FormatJSON:
		return e.exportJSON(selected, opts)
	case FormatCSV:
		return e.exportCSV(selected, opts), nil
	case FormatTXT:
		return e.exportTXT(selected, opts), nil
	default:
		return nil, fmt.Errorf("export %q: %w", opts.Format, ErrUnsupportedFormat)
	}
}

type jsonBackup struct {
	ExportedAt     string       `json:"exportedAt"`
	Version        string       `json:"version"`
	TotalPasswords int          `json:"totalPasswords"`
	Passwords      []jsonRecord `json:"passwords"`
}

type jsonRecord struct {
	ID        string                     `json:"id"`
	Label     string                     `json:"label"`
	CreatedAt time.Time                  `json:"createdAt"`
	Strength  int                        `json:"strength"`
	Length    int                        `json:"length"`
	Password  *string                    `json:"password,omitempty"`
	Settings  *models.GenerationSettings `json:"settings,omitempty"`
	Category  string                     `json:"category,omitempty"`
}

func (e *Exporter) exportJSON(records []models.PasswordRecord, opts ExportOptions) ([]byte, error) {
	doc := jsonBackup{
		ExportedAt:     e.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Version:        ExportVersion,
		TotalPasswords: len(records),
		Passwords:      make([]jsonRecord, 0, len(records)),
	}
	for _, r := range records {
		entry := jsonRecord{
			ID:        r.ID,
			Label:     r.Label,
			CreatedAt: r.CreatedAt,
			Strength:  r.Strength,
			Length:    r.Length,
		}
		if opts.IncludePasswords {
			entry.Password = &r.Password
		}
		if opts.IncludeMetadata {
			entry.Settings = &r.Settings
			entry.Category = r.Category
		}
		doc.Passwords = append(doc.Passwords, entry)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode json export: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (e *Exporter) exportCSV(records []models.PasswordRecord, opts ExportOptions) []byte {
	header := []string{"Label", "Created At", "Strength", "Length"}
	if opts.IncludePasswords {
		header = append(header, "Password")
	}
	if opts.IncludeMetadata {
		header = append(header, "Category", "Uppercase", "Lowercase", "Numbers", "Symbols", "Exclude Similar")
	}

	rows := []string{strings.Join(header, ",")}
	for _, r := range records {
		row := []string{
			quote(r.Label),
			quote(e.date(r.CreatedAt)),
			strconv.Itoa(r.Strength),
			strconv.Itoa(r.Length),
		}
		if opts.IncludePasswords {
			row = append(row, quote(r.Password))
		}
		if opts.IncludeMetadata {
			s := r.Settings
			row = append(row,
				quote(r.Category),
				strconv.FormatBool(s.IncludeUppercase),
				strconv.FormatBool(s.IncludeLowercase),
				strconv.FormatBool(s.IncludeNumbers),
				strconv.FormatBool(s.IncludeSymbols),
				strconv.FormatBool(s.ExcludeSimilar),
			)
		}
		rows = append(rows, strings.Join(row, ","))
	}
	return []byte(strings.Join(rows, "\n"))
}

func (e *Exporter) exportTXT(records []models.PasswordRecord, opts ExportOptions) []byte {
	lines := []string{
		"SecurePass - Password Export",
		"Exported: " + e.Now().In(e.Location).Format("1/2/2006, 3:04:05 PM"),
		"Total Passwords: " + strconv.Itoa(len(records)),
		strings.Repeat("=", 50),
		"",
	}

	for i, r := range records {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, r.Label),
			"   Created: "+e.date(r.CreatedAt),
			fmt.Sprintf("   Strength: %d%% (%s)", r.Strength, stats.TierOf(r.Strength)),
			fmt.Sprintf("   Length: %d characters", r.Length),
		)
		if opts.IncludePasswords {
			lines = append(lines, "   Password: "+r.Password)
		}
		if opts.IncludeMetadata && r.Category != "" {
			lines = append(lines, "   Category: "+r.Category)
		}
		lines = append(lines, "")
	}
	return []byte(strings.Join(lines, "\n"))
}

// date renders t as M/D/YYYY.
func (e *Exporter) date(t time.Time) string {
	return t.In(e.Location).Format("1/2/2006")
}

// quote always wraps s in double quotes, doubling embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
