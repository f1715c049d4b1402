package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "EDIT_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation embedded by concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewEditRecorded is emitted after a user edit has been analyzed and
// stored as preference records.
func NewEditRecorded(userID, textType string) Event {
	return BaseEvent{
		Type: "EDIT_RECORDED",
		Data: map[string]interface{}{
			"user_id":   userID,
			"text_type": textType,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIngested is emitted after a document batch has been
// embedded and persisted into a category corpus.
func NewDocumentIngested(category string, documents int) Event {
	return BaseEvent{
		Type: "DOCUMENT_INGESTED",
		Data: map[string]interface{}{
			"category":  category,
			"documents": documents,
		},
		OccurredAt: time.Now(),
	}
}
