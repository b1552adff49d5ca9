package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-adventure/internal/game"
)

// SubjectPrefix is the root of every game event subject.
const SubjectPrefix = "adventure"

// Bus sends raw messages on a subject.
type Bus interface {
	Publish(subject string, data []byte) error
}

// EventPublisher publishes game events to adventure.<replica>.<kind>.
type EventPublisher struct {
	bus     Bus
	replica string
}

// NewEventPublisher tags every event it sends with the given replica id.
func NewEventPublisher(bus Bus, replica string) *EventPublisher {
	return &EventPublisher{bus: bus, replica: replica}
}

func (p *EventPublisher) Publish(_ context.Context, ev game.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}

	if err := p.bus.Publish(EventSubject(p.replica, ev.Kind), data); err != nil {
		return fmt.Errorf("publishing %s event: %w", ev.Kind, err)
	}
	return nil
}

// EventSubject returns the subject events of kind are published on.
func EventSubject(replica string, kind game.EventKind) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, replica, kind)
}
