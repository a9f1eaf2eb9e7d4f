package messaging

import (
	"encoding/json"
	"fmt"
)

// EventSubjectPrefix prefixes every event subject, e.g. "rogue.event.floor".
const EventSubjectPrefix = "rogue.event."

// Publisher sends raw messages to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// EventPublisher publishes JSON encoded events for external consumers.
type EventPublisher struct {
	pub Publisher
}

// NewEventPublisher wraps a Publisher for event delivery.
func NewEventPublisher(pub Publisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

// PublishEvent sends v on the event subject for kind.
func (p *EventPublisher) PublishEvent(kind string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling %s event: %w", kind, err)
	}
	return p.pub.Publish(EventSubjectPrefix+kind, data)
}
