package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/repository"
)

const eventColumns = "id, stream_id, stream_type, version, event_type, payload, created_at"

type eventStore struct {
	db *sql.DB
}

// NewEventStore creates an EventStore over the events table.
func NewEventStore(db *sql.DB) repository.EventStore {
	return &eventStore{db: db}
}

// Append writes events in one statement. Two writers racing on the same version are
// separated by the (stream_type, stream_id, version) unique key.
func (s *eventStore) Append(ctx context.Context, streamType, streamID string, expectedVersion int, events ...entity.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM events WHERE stream_type = $1 AND stream_id = $2",
		streamType, streamID,
	).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read %s/%s version: %w", streamType, streamID, err)
	}
	if err := repository.CheckVersion(streamType, streamID, expectedVersion, current); err != nil {
		return err
	}

	records, err := entity.NewRecords(streamType, streamID, expectedVersion, time.Now().UTC(), uuid.NewString, events...)
	if err != nil {
		return err
	}
	query, args := insertRecords(records)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s/%s written concurrently at version %d", repository.ErrVersionMismatch, streamType, streamID, expectedVersion+1)
		}
		return fmt.Errorf("failed to insert %d events into %s/%s: %w", len(records), streamType, streamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertRecords(records []entity.EventStoreRecord) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO events (" + eventColumns + ") VALUES ")

	const perRow = 7
	args := make([]any, 0, len(records)*perRow)
	for i, rec := range records {
		if i > 0 {
			b.WriteString(", ")
		}
		n := i * perRow
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6, n+7)
		args = append(args, rec.ID, rec.StreamID, rec.StreamType, rec.Version, rec.EventType, rec.Payload, rec.CreatedAt)
	}
	return b.String(), args
}

func (s *eventStore) Load(ctx context.Context, streamType, streamID string) ([]entity.EventStoreRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE stream_type = $1 AND stream_id = $2 ORDER BY version",
		streamType, streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s/%s: %w", streamType, streamID, err)
	}
	defer rows.Close()

	var records []entity.EventStoreRecord
	for rows.Next() {
		var rec entity.EventStoreRecord
		if err := rows.Scan(&rec.ID, &rec.StreamID, &rec.StreamType, &rec.Version, &rec.EventType, &rec.Payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
