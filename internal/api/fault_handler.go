package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/forget/internal/api/shared"
	"github.com/phrazzld/forget/internal/store"
)

// FaultHandler serves captured faults.
type FaultHandler struct {
	faults store.FaultReader
	logger *slog.Logger
}

// NewFaultHandler creates a FaultHandler reading from faults.
func NewFaultHandler(faults store.FaultReader, logger *slog.Logger) *FaultHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FaultHandler{
		faults: faults,
		logger: logger.With("component", "fault_handler"),
	}
}

// ListFaults handles GET /api/faults?limit=N.
func (h *FaultHandler) ListFaults(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
		return
	}
	if err := shared.ValidateRequest(&q); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	faults, err := h.faults.ListFaults(r.Context(), q.Limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to list faults", err)
		return
	}

	resp := FaultListResponse{
		Faults: make([]FaultResponse, 0, len(faults)),
		Count:  len(faults),
	}
	for _, rec := range faults {
		resp.Faults = append(resp.Faults, faultToResponse(rec))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetFault handles GET /api/faults/{id}.
func (h *FaultHandler) GetFault(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid fault ID", err)
		return
	}

	rec, err := h.faults.GetFault(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, faultToResponse(rec))
}
