package run

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rc-tools/cost-ledger/pkg/adapters"
	"github.com/rc-tools/cost-ledger/pkg/models/api"
	"github.com/rc-tools/cost-ledger/pkg/services/archive"
	"github.com/rs/zerolog"
)

type Handler struct {
	archive archive.Explorer
}

func NewHandler(archive archive.Explorer) *Handler {
	return &Handler{archive: archive}
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	runs, err := h.archive.ListRuns(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list runs")
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}

	response := make([]api.Run, 0, len(runs))
	for _, run := range runs {
		response = append(response, adapters.MapRunDomainToApi(run))
	}

	writeJSON(w, logger, response)
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "run")

	run, err := h.archive.GetRun(ctx, id)
	if errors.Is(err, archive.ErrRunNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("run", id).Msg("failed to get run")
		http.Error(w, "failed to get run", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapRunDomainToApi(*run))
}

func (h *Handler) GetRunRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "run")

	if _, err := h.archive.GetRun(ctx, id); err != nil {
		if errors.Is(err, archive.ErrRunNotFound) {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("run", id).Msg("failed to get run")
		http.Error(w, "failed to get run", http.StatusInternalServerError)
		return
	}

	records, err := h.archive.GetRunRecords(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("run", id).Msg("failed to get run records")
		http.Error(w, "failed to get run records", http.StatusInternalServerError)
		return
	}

	response := make([]api.FocusRecord, 0, len(records))
	for _, record := range records {
		response = append(response, adapters.MapFocusRecordDomainToApi(record))
	}

	writeJSON(w, logger, response)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
