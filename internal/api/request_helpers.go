package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/forget/internal/store"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", store.ErrInvalidEntity, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", store.ErrInvalidEntity, paramName)
	}

	return id, nil
}

// listQuery holds the query parameters of list endpoints.
type listQuery struct {
	Limit int `validate:"gte=1,lte=500"`
}

// parseListQuery reads ?limit=N, defaulting to store.DefaultListLimit.
func parseListQuery(r *http.Request) (listQuery, error) {
	q := listQuery{Limit: store.DefaultListLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("limit must be an integer: %w", err)
		}
		q.Limit = limit
	}
	return q, nil
}
