package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/industrial-labels/qrtag/internal/models"
	"github.com/industrial-labels/qrtag/internal/profile"
	"github.com/industrial-labels/qrtag/internal/storage"
)

type Handler struct {
	batchStore *storage.BatchStore
	profile    profile.Profile
}

func New(p profile.Profile) *Handler {
	return &Handler{
		batchStore: storage.New(),
		profile:    p,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Batch helpers
func (h *Handler) getBatchOrError(w http.ResponseWriter, batchID string) (*models.Batch, bool) {
	batch, exists := h.batchStore.Get(batchID)
	if !exists {
		h.writeError(w, "Batch not found", http.StatusNotFound)
		return nil, false
	}
	return batch, true
}

// File operation helpers
func (h *Handler) ensureUploadsDir() error {
	uploadsDir := "uploads"
	return os.MkdirAll(uploadsDir, 0755)
}
