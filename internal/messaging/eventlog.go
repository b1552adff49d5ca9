package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-adventure/internal/game"
)

// EventLog logs every game event seen on the bus.
type EventLog struct {
	server *NatsServer
}

func NewEventLog(server *NatsServer) *EventLog {
	return &EventLog{server: server}
}

func (l *EventLog) Start(ctx context.Context) error {
	select {
	case <-l.server.Ready():
	case <-ctx.Done():
		return nil
	}

	unsubscribe, err := l.server.Subscribe(SubjectPrefix+".>", func(subject string, data []byte) {
		var ev game.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			slog.WarnContext(ctx, "malformed game event", "subject", subject, "error", err)
			return
		}
		slog.InfoContext(ctx, "game event",
			"subject", subject,
			"seq", ev.Seq,
			"kind", ev.Kind,
			"location", ev.Location,
			"health", ev.Health,
			"item", ev.Item,
			"inventory", ev.Inventory,
		)
	})
	if err != nil {
		return fmt.Errorf("subscribing to game events: %w", err)
	}
	defer unsubscribe()

	<-ctx.Done()
	return nil
}
