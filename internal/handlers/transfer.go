// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"securepass/internal/archive"
	"securepass/internal/middleware"
	"securepass/internal/transfer"
)

type archiveResponse struct {
	archive.Receipt
	Filename string `json:"filename"`
}

// render decodes export options and renders the vault. On failure it has
// already written the response.
func (a *API) render(w http.ResponseWriter, r *http.Request) (data []byte, format transfer.Format, ok bool) {
	var opts transfer.ExportOptions
	if !decodeJSON(w, r, &opts) {
		return nil, "", false
	}
	format, err := transfer.ParseFormat(string(opts.Format))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Format must be one of json, csv, txt.")
		return nil, "", false
	}
	opts.Format = format

	v, ok := a.open(w, r)
	if !ok {
		return nil, "", false
	}
	data, err = a.exporter().Export(v.passwords.List(r.Context()), opts)
	if err != nil {
		slog.Error("export failed", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to export passwords.")
		return nil, "", false
	}
	return data, format, true
}

// Export returns a backup file as a download.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	data, format, ok := a.render(w, r)
	if !ok {
		return
	}

	filename := transfer.BackupFilename(format, a.now().In(a.location))
	w.Header().Set("Content-Type", transfer.MimeType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ExportArchive uploads a backup to object storage and returns a
// short-lived download link.
func (a *API) ExportArchive(w http.ResponseWriter, r *http.Request) {
	if a.archiver == nil {
		writeError(w, http.StatusServiceUnavailable, "Backup archive storage is not configured.")
		return
	}
	id, ok := middleware.VaultFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	data, format, ok := a.render(w, r)
	if !ok {
		return
	}

	filename := transfer.BackupFilename(format, a.now().In(a.location))
	receipt, err := a.archiver.Store(r.Context(), id.String(), filename, transfer.MimeType(format), data)
	if err != nil {
		slog.Error("archive upload failed", "filename", filename, "error", err)
		writeError(w, http.StatusBadGateway, "Failed to upload backup.")
		return
	}

	slog.Info("backup archived", "key", receipt.Key, "bytes", len(data))
	writeJSON(w, http.StatusCreated, archiveResponse{Receipt: receipt, Filename: filename})
}

// Import merges a JSON backup sent as the raw request body.
func (a *API) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Backup file is too large.")
			return
		}
		writeError(w, http.StatusBadRequest, "Failed to read request body.")
		return
	}

	v, ok := a.open(w, r)
	if !ok {
		return
	}
	importer := transfer.NewImporter(v.passwords)
	importer.SetClock(a.now)
	result := importer.Import(r.Context(), string(body))

	status := http.StatusOK
	switch {
	case result.WriteFailed:
		status = http.StatusInternalServerError
	case !result.Success:
		status = http.StatusBadRequest
	}
	slog.Info("import finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
		"success", result.Success,
	)
	writeJSON(w, status, result)
}
