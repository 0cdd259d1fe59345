package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// Topic constants.
const (
	TopicLaudoCreated       = "laudo.created"
	TopicLaudoStatusChanged = "laudo.status_changed"
)

const envelopeSchemaVersion = "1.0"

// EventEnvelope standardizes event messages across topics.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// LaudoCreatedPayload is the body of laudo.created events.
type LaudoCreatedPayload struct {
	LaudoID   string        `json:"laudo_id"`
	Code      string        `json:"codigo"`
	Status    ltypes.Status `json:"status"`
	ModelID   string        `json:"modelo"`
	SectorID  string        `json:"setor"`
	Total     int           `json:"total"`
	Approved  int           `json:"aprovados"`
	Rejected  int           `json:"reprovados"`
	CreatedAt time.Time     `json:"created_at"`
}

// LaudoStatusChangedPayload is the body of laudo.status_changed events.
type LaudoStatusChangedPayload struct {
	LaudoID   string        `json:"laudo_id"`
	Code      string        `json:"codigo"`
	From      ltypes.Status `json:"from"`
	To        ltypes.Status `json:"to"`
	ChangedAt time.Time     `json:"changed_at"`
}

// NewEnvelope wraps a payload in the standard envelope.
func NewEnvelope(eventType string, payload interface{}) (*EventEnvelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        "labqc-apiserver",
		Timestamp:     time.Now().UTC(),
		SchemaVersion: envelopeSchemaVersion,
		Payload:       body,
	}, nil
}
