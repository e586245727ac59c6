package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/forget/internal/redact"
	"github.com/phrazzld/forget/internal/task"
)

// WorkRequest describes a demo job. The job sleeps for DelayMs and then
// succeeds, returns an error (Fail) or panics (Panic).
type WorkRequest struct {
	Label   string `json:"label" validate:"omitempty,max=100"`
	DelayMs int    `json:"delay_ms" validate:"gte=0,lte=60000"`
	Fail    bool   `json:"fail"`
	Panic   bool   `json:"panic"`
	Message string `json:"message" validate:"omitempty,max=500"`
}

// WorkAcceptedResponse is returned for fire-and-forget submissions.
type WorkAcceptedResponse struct {
	Status string `json:"status"`
	Label  string `json:"label,omitempty"`
}

// WorkResultResponse is returned for awaited submissions.
type WorkResultResponse struct {
	InvocationID uuid.UUID       `json:"invocation_id"`
	Status       task.WorkStatus `json:"status"`
	Label        string          `json:"label,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// FaultResponse is the API view of a task.FaultRecord. The message is
// redacted and the stack is omitted.
type FaultResponse struct {
	InvocationID uuid.UUID      `json:"invocation_id"`
	Kind         task.FaultKind `json:"kind"`
	Message      string         `json:"message"`
	ErrorType    string         `json:"error_type"`
	OccurredAt   time.Time      `json:"occurred_at"`
}

// FaultListResponse wraps a page of faults.
type FaultListResponse struct {
	Faults []FaultResponse `json:"faults"`
	Count  int             `json:"count"`
}

func faultToResponse(rec task.FaultRecord) FaultResponse {
	return FaultResponse{
		InvocationID: rec.InvocationID,
		Kind:         rec.Kind,
		Message:      redact.String(rec.Message),
		ErrorType:    rec.ErrorType,
		OccurredAt:   rec.OccurredAt,
	}
}
