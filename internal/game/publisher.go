package game

import (
	"context"
	"time"
)

// EventKind names the mutation an Event describes.
type EventKind string

const (
	EventMoved    EventKind = "moved"
	EventPickedUp EventKind = "picked_up"
)

// Event describes a successful change to the game state. Seq increases by one
// per mutation of a GameState.
type Event struct {
	Seq       uint64    `json:"seq"`
	Kind      EventKind `json:"kind"`
	Location  Location  `json:"location"`
	Health    int       `json:"health"`
	Item      Item      `json:"item,omitempty"`
	Inventory []Item    `json:"inventory"`
	Time      time.Time `json:"time"`
}

// Publisher receives game events after each successful mutation. Events are
// published outside the state lock, so concurrent mutations may arrive out of
// order; consumers order them by Seq.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}
