package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/industrial-labels/qrtag/internal/label"
	"github.com/industrial-labels/qrtag/internal/models"
)

func (h *Handler) HandleBatches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		batches := h.batchStore.GetAll()
		batchList := make([]*models.Batch, 0, len(batches))
		for _, batch := range batches {
			batchList = append(batchList, batch)
		}
		h.writeJSON(w, batchList)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleBatchDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/batches/")

	if batchID, ok := strings.CutSuffix(rest, "/labels"); ok {
		h.handleGenerateLabels(w, r, batchID)
		return
	}

	batch, ok := h.getBatchOrError(w, rest)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, batch)
	case "DELETE":
		h.batchStore.Delete(rest)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleGenerateLabels(w http.ResponseWriter, r *http.Request, batchID string) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	batch, ok := h.getBatchOrError(w, batchID)
	if !ok {
		return
	}

	var request struct {
		Fields []string `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(request.Fields) == 0 {
		request.Fields = h.profile.Fields
	}

	slog.Info("Generating labels", "batch_id", batchID, "records", len(batch.Records), "fields", request.Fields)

	generator := label.New(h.profile)
	result, err := generator.Generate(label.Request{
		Records: batch.Records,
		Fields:  request.Fields,
	})
	if err != nil {
		var buildErr *label.DocumentBuildError
		if errors.As(err, &buildErr) {
			h.writeError(w, buildErr.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.writeError(w, "Failed to generate labels: "+err.Error(), http.StatusInternalServerError)
		return
	}

	for _, d := range result.Skipped {
		slog.Warn("Record skipped during generation", "batch_id", batchID, "index", d.Index, "reason", d.Reason)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="labels.pdf"`)
	w.Header().Set("X-Label-Pages", fmt.Sprintf("%d", result.Pages))
	w.Header().Set("X-Skipped-Records", fmt.Sprintf("%d", len(result.Skipped)))
	if _, err := w.Write(result.PDF); err != nil {
		slog.Error("Unable to write PDF response", "batch_id", batchID, "err", err)
	}
}
