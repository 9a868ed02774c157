package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/industrial-labels/qrtag/internal/models"
	"github.com/industrial-labels/qrtag/internal/source"
)

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	if err := h.ensureUploadsDir(); err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Limit file size to 10MB
	fileData, err := io.ReadAll(io.LimitReader(file, 10*1024*1024))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) >= 10*1024*1024 {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	batchID := uuid.NewString()

	// The spreadsheet and parquet readers work from paths, so the upload
	// is staged on disk under its batch ID.
	stagedPath := filepath.Join("uploads", batchID+filepath.Ext(header.Filename))
	if err := os.WriteFile(stagedPath, fileData, 0644); err != nil {
		h.writeError(w, "Failed to stage upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	loader := source.NewLoader(stagedPath, h.profile.MarkerColumn)
	records, err := loader.Load()
	if err != nil {
		var invalid *source.InvalidInputError
		if errors.As(err, &invalid) {
			h.writeError(w, invalid.Reason, http.StatusBadRequest)
			return
		}
		h.writeError(w, "Failed to load source: "+err.Error(), http.StatusBadRequest)
		return
	}

	batch := &models.Batch{
		ID:        batchID,
		Filename:  header.Filename,
		Columns:   records[0].Fields(),
		Records:   records,
		CreatedAt: time.Now(),
	}
	h.batchStore.Set(batchID, batch)

	response := map[string]any{
		"batch_id": batchID,
		"filename": header.Filename,
		"rows":     len(records),
		"columns":  batch.Columns,
	}

	h.writeJSON(w, response)
}
