package events

import "time"

const (
	ContactSubmitted = "CONTACT_SUBMITTED"
	ContactFailed    = "CONTACT_FAILED"
)

// Event is anything that can be published on the bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

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

// New stamps data with the event type and time so consumers that only see
// the payload still know both.
func New(eventType string, data map[string]interface{}, at time.Time) BaseEvent {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["event_type"] = eventType
	data["occurred_at"] = at.UTC().Format(time.RFC3339)
	return BaseEvent{Type: eventType, Data: data, OccurredAt: at}
}
