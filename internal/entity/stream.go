package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// OrderStream is the stream type every order event is filed under.
const OrderStream = "order"

// Event is a domain event appended to a stream.
type Event interface {
	EventType() string
}

// EventStoreRecord is one persisted event. Versions start at 1 within a stream.
type EventStoreRecord struct {
	ID         string    `json:"id"`
	StreamID   string    `json:"stream_id"`
	StreamType string    `json:"stream_type"`
	Version    int       `json:"version"`
	EventType  string    `json:"event_type"`
	Payload    []byte    `json:"payload"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRecords encodes events as the records that follow version in a stream.
func NewRecords(streamType, streamID string, version int, at time.Time, newID func() string, events ...Event) ([]EventStoreRecord, error) {
	records := make([]EventStoreRecord, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
		}
		version++
		records = append(records, EventStoreRecord{
			ID:         newID(),
			StreamID:   streamID,
			StreamType: streamType,
			Version:    version,
			EventType:  event.EventType(),
			Payload:    payload,
			CreatedAt:  at,
		})
	}
	return records, nil
}

// DecodeOrderEvent turns an order stream record back into its event.
func DecodeOrderEvent(rec EventStoreRecord) (Event, error) {
	if rec.StreamType != OrderStream {
		return nil, fmt.Errorf("record %s belongs to stream type %q, not %q", rec.ID, rec.StreamType, OrderStream)
	}

	var (
		event Event
		err   error
	)
	switch rec.EventType {
	case OrderPlaced{}.EventType():
		var e OrderPlaced
		err = json.Unmarshal(rec.Payload, &e)
		event = e
	case OrderConfirmed{}.EventType():
		var e OrderConfirmed
		err = json.Unmarshal(rec.Payload, &e)
		event = e
	case OrderDeleted{}.EventType():
		var e OrderDeleted
		err = json.Unmarshal(rec.Payload, &e)
		event = e
	default:
		return nil, fmt.Errorf("unknown event type in order stream: %s", rec.EventType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", rec.EventType, err)
	}
	return event, nil
}
