package game

import "time"

type GameStateOpt func(*GameState)

// WithPublisher sends an Event to p after every successful mutation.
func WithPublisher(p Publisher) GameStateOpt {
	return func(g *GameState) {
		g.publisher = p
	}
}

// WithPicker replaces the random source used by Pickup. pick must return a
// value in [0, n).
func WithPicker(pick func(n int) int) GameStateOpt {
	return func(g *GameState) {
		g.pick = pick
	}
}

// WithClock sets the time source stamped on events.
func WithClock(now func() time.Time) GameStateOpt {
	return func(g *GameState) {
		g.now = now
	}
}
