package game

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	MaxHealth = 100
	MinHealth = 0
)

// Snapshot is an immutable copy of the game state.
type Snapshot struct {
	Location  Location
	Health    int
	Inventory []Item
}

// MoveResult is returned by a successful Move.
type MoveResult struct {
	Location Location
	Health   int
}

// PickupResult is returned by Pickup. Added is false when the chosen item was
// already held, in which case Inventory is unchanged.
type PickupResult struct {
	Item      Item
	Added     bool
	Inventory []Item
}

// GameState is the single source of truth for the world. All access must go
// through its methods; mutations hold the write lock for the whole
// read-modify-write sequence, reads hold the read lock.
type GameState struct {
	mu        sync.RWMutex
	location  Location
	health    int
	inventory Inventory
	seq       uint64

	pick      func(n int) int
	publisher Publisher
	now       func() time.Time
}

// NewGameState creates a game at the starting location with full health and
// an empty inventory.
func NewGameState(opts ...GameStateOpt) *GameState {
	g := &GameState{
		location: StartLocation,
		health:   MaxHealth,
		pick:     rand.IntN,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Snapshot returns the current state without modifying it.
func (g *GameState) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return Snapshot{
		Location:  g.location,
		Health:    g.health,
		Inventory: g.inventory.Items(),
	}
}

// Move travels in the given direction. An unknown direction returns an error
// wrapping ErrInvalidDirection and leaves the state untouched.
func (g *GameState) Move(ctx context.Context, direction string) (MoveResult, error) {
	dest, err := Destination(direction)
	if err != nil {
		return MoveResult{}, err
	}

	g.mu.Lock()
	g.location = dest
	g.seq++
	seq := g.seq
	res := MoveResult{Location: g.location, Health: g.health}
	inv := g.inventory.Items()
	g.mu.Unlock()

	g.publish(ctx, Event{
		Seq:       seq,
		Kind:      EventMoved,
		Location:  res.Location,
		Health:    res.Health,
		Inventory: inv,
	})

	return res, nil
}

// Pickup searches the area for a random item from the Catalog.
func (g *GameState) Pickup(ctx context.Context) PickupResult {
	item := Catalog[g.pick(len(Catalog))]

	g.mu.Lock()
	added := g.inventory.Add(item)
	res := PickupResult{
		Item:      item,
		Added:     added,
		Inventory: g.inventory.Items(),
	}
	loc, health := g.location, g.health
	var seq uint64
	if added {
		g.seq++
		seq = g.seq
	}
	g.mu.Unlock()

	if added {
		g.publish(ctx, Event{
			Seq:       seq,
			Kind:      EventPickedUp,
			Location:  loc,
			Health:    health,
			Item:      item,
			Inventory: res.Inventory,
		})
	}

	return res
}

// Regenerate adjusts health by amount, clamped to [MinHealth, MaxHealth].
// Returns the resulting health.
func (g *GameState) Regenerate(amount int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.health = clampHealth(g.health + amount)
	return g.health
}

// Tick regenerates a point of health.
func (g *GameState) Tick(ctx context.Context) error {
	g.Regenerate(1)
	return nil
}

func (g *GameState) publish(ctx context.Context, ev Event) {
	if g.publisher == nil {
		return
	}

	ev.Time = g.now()
	if err := g.publisher.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "failed to publish game event", "kind", ev.Kind, "error", err)
	}
}

func clampHealth(h int) int {
	return min(max(h, MinHealth), MaxHealth)
}
