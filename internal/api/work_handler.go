package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/forget/internal/api/shared"
	"github.com/phrazzld/forget/internal/platform/logger"
	"github.com/phrazzld/forget/internal/redact"
	"github.com/phrazzld/forget/internal/task"
)

// Dispatcher is the part of *task.Dispatcher the work handler needs.
type Dispatcher interface {
	task.Submitter
	Forget(h *task.Handle) error
}

// WorkHandler handles work submission requests.
type WorkHandler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewWorkHandler creates a new WorkHandler.
func NewWorkHandler(dispatcher Dispatcher, logger *slog.Logger) *WorkHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkHandler{
		dispatcher: dispatcher,
		logger:     logger.With("component", "work_handler"),
	}
}

// decodeWorkRequest parses and validates the request body, writing an error
// response when it is unusable.
func (h *WorkHandler) decodeWorkRequest(w http.ResponseWriter, r *http.Request) (WorkRequest, bool) {
	var req WorkRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return req, false
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return req, false
	}
	return req, true
}

// Submit handles POST /api/work. The job runs in the background and the
// response does not wait for it; failures end up at the fault sink.
func (h *WorkHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWorkRequest(w, r)
	if !ok {
		return
	}

	if err := h.dispatcher.Submit(req.Work()); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, WorkAcceptedResponse{
		Status: "accepted",
		Label:  req.Label,
	})
}

// SubmitAndWait handles POST /api/work/await. The job's outcome is returned
// to the caller and never reaches the fault sink, unless the caller goes
// away first: the handle is then forgotten so a later failure is still
// captured.
func (h *WorkHandler) SubmitAndWait(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWorkRequest(w, r)
	if !ok {
		return
	}

	handle, err := h.dispatcher.SubmitAwaitable(req.Work())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if waitErr := handle.Wait(r.Context()); waitErr != nil && !settled(handle) {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		if forgetErr := h.dispatcher.Forget(handle); forgetErr != nil {
			log.Warn("could not hand abandoned work to the fault sink",
				"invocation_id", handle.ID(),
				"error", forgetErr)
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(waitErr), GetSafeErrorMessage(waitErr), waitErr)
		return
	}

	resp := WorkResultResponse{
		InvocationID: handle.ID(),
		Status:       handle.Status(),
		Label:        req.Label,
	}

	if workErr := handle.Err(); workErr != nil {
		resp.Error = redact.Error(workErr)
		shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, resp)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func settled(h *task.Handle) bool {
	select {
	case <-h.Done():
		return true
	default:
		return false
	}
}
