package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/forget/internal/platform/logger"
	"github.com/phrazzld/forget/internal/store"
	"github.com/phrazzld/forget/internal/task"
)

const faultColumns = `invocation_id, kind, message, error_type, stack, occurred_at`

// PostgresFaultStore implements store.FaultStore using PostgreSQL.
type PostgresFaultStore struct {
	db store.DBTX
}

var _ store.FaultStore = (*PostgresFaultStore)(nil)

// NewPostgresFaultStore creates a new PostgresFaultStore.
func NewPostgresFaultStore(db store.DBTX) *PostgresFaultStore {
	return &PostgresFaultStore{db: db}
}

// SaveFault inserts rec into fault_records.
func (s *PostgresFaultStore) SaveFault(ctx context.Context, rec task.FaultRecord) error {
	log := logger.FromContext(ctx)

	if err := store.ValidateFault(rec); err != nil {
		return err
	}

	query := `
		INSERT INTO fault_records (` + faultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.InvocationID,
		string(rec.Kind),
		rec.Message,
		rec.ErrorType,
		rec.Stack,
		rec.OccurredAt.UTC(),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrFaultExists, rec.InvocationID)
		}
		log.Error("failed to save fault",
			"invocation_id", rec.InvocationID,
			"error", err)
		return store.NewStoreError("fault", "save", "insert failed", MapError(err))
	}

	return nil
}

// GetFault returns the fault recorded for invocationID.
func (s *PostgresFaultStore) GetFault(ctx context.Context, invocationID uuid.UUID) (task.FaultRecord, error) {
	query := `SELECT ` + faultColumns + ` FROM fault_records WHERE invocation_id = $1`

	rec, err := scanFault(s.db.QueryRowContext(ctx, query, invocationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.FaultRecord{}, fmt.Errorf("%w: %s", store.ErrFaultNotFound, invocationID)
		}
		logger.FromContext(ctx).Error("failed to get fault",
			"invocation_id", invocationID,
			"error", err)
		return task.FaultRecord{}, store.NewStoreError("fault", "get", "query failed", MapError(err))
	}
	return rec, nil
}

// ListFaults returns up to limit faults ordered by occurrence, newest first.
func (s *PostgresFaultStore) ListFaults(ctx context.Context, limit int) ([]task.FaultRecord, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	query := `
		SELECT ` + faultColumns + `
		FROM fault_records
		ORDER BY occurred_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Error("failed to list faults", "error", err)
		return nil, store.NewStoreError("fault", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	faults := make([]task.FaultRecord, 0, limit)
	for rows.Next() {
		rec, err := scanFault(rows)
		if err != nil {
			log.Error("failed to scan fault row", "error", err)
			return nil, store.NewStoreError("fault", "list", "scan failed", err)
		}
		faults = append(faults, rec)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating fault rows", "error", err)
		return nil, store.NewStoreError("fault", "list", "iteration failed", err)
	}

	return faults, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFault(row rowScanner) (task.FaultRecord, error) {
	var (
		rec  task.FaultRecord
		kind string
	)
	err := row.Scan(
		&rec.InvocationID,
		&kind,
		&rec.Message,
		&rec.ErrorType,
		&rec.Stack,
		&rec.OccurredAt,
	)
	if err != nil {
		return task.FaultRecord{}, err
	}
	rec.Kind = task.FaultKind(kind)
	rec.OccurredAt = rec.OccurredAt.UTC()
	return rec, nil
}
