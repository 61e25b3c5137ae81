package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event is a user-facing signal about a generation outcome.
type Event struct {
	Type       string         `json:"type"`
	OwnerID    uuid.UUID      `json:"owner_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Emitter publishes events to the owner's Redis pub/sub channel. Delivery is
// fire-and-forget: Notify never blocks and never reports failure to the
// caller; a full queue drops the event with a warning.
type Emitter struct {
	rdb    *redis.Client
	events chan Event
	done   chan struct{}
}

func NewEmitter(rdb *redis.Client) *Emitter {
	e := &Emitter{
		rdb:    rdb,
		events: make(chan Event, 1000),
		done:   make(chan struct{}),
	}
	go e.processLoop()
	return e
}

func (e *Emitter) Notify(ownerID uuid.UUID, event string, metadata map[string]any) {
	ev := Event{
		Type:       event,
		OwnerID:    ownerID,
		Metadata:   metadata,
		OccurredAt: time.Now().UTC(),
	}
	select {
	case e.events <- ev:
	default:
		slog.Warn("notification queue full, dropping event", "owner_id", ownerID, "event", event)
	}
}

// Close stops the delivery loop after draining queued events.
func (e *Emitter) Close() {
	close(e.events)
	<-e.done
}

func (e *Emitter) processLoop() {
	defer close(e.done)
	for ev := range e.events {
		e.publish(ev)
	}
}

func (e *Emitter) publish(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("marshal notification", "error", err)
		return
	}

	channel := fmt.Sprintf("user:%s:events", ev.OwnerID)
	if err := e.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		slog.Error("publish notification", "channel", channel, "event", ev.Type, "error", err)
	}
}
