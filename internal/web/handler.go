package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/identity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// noDirection is used when a move request names no direction.
const noDirection = "nowhere"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Game is the state the handler drives.
type Game interface {
	Move(ctx context.Context, direction string) (game.MoveResult, error)
	Pickup(ctx context.Context) game.PickupResult
	Snapshot() game.Snapshot
}

// IdentityResolver reports which server is answering.
type IdentityResolver interface {
	Resolve(ctx context.Context) identity.Identity
}

type moveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Health  *int   `json:"health,omitempty"`
}

type pickupResponse struct {
	Message   string      `json:"message"`
	Inventory []game.Item `json:"inventory"`
}

type healthResponse struct {
	Health   int           `json:"health"`
	Location game.Location `json:"location"`
}

// Handler maps HTTP requests onto game operations. Game outcomes, good or
// bad, are always answered with 200; only the payload tells them apart.
type Handler struct {
	game   Game
	ids    IdentityResolver
	render *renderer
	tracer trace.Tracer
	mux    *http.ServeMux
}

// NewHandler builds the route table for g.
func NewHandler(g Game, ids IdentityResolver) (*Handler, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		game:   g,
		ids:    ids,
		render: r,
		tracer: otel.Tracer("github.com/pixil98/go-adventure/internal/web"),
		mux:    http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /{$}", h.handleIndex)
	h.mux.HandleFunc("GET /move", h.handleMove)
	h.mux.HandleFunc("GET /pickup", h.handlePickup)
	h.mux.HandleFunc("GET /health", h.handleHealth)

	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "index")
	defer span.End()

	snap := h.game.Snapshot()
	h.annotate(span, snap.Location, snap.Health)
	data := newPageData(snap, h.ids.Resolve(ctx))

	var err error
	if wantsText(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		err = h.render.Text(w, data)
	} else {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = h.render.HTML(w, data)
	}
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "rendering landing page", "error", err)
		http.Error(w, "rendering page", http.StatusInternalServerError)
	}
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "move")
	defer span.End()

	direction := r.URL.Query().Get("to")
	if direction == "" {
		direction = noDirection
	}
	span.SetAttributes(attribute.String("game.direction", direction))

	res, err := h.game.Move(ctx, direction)
	if err != nil {
		if !errors.Is(err, game.ErrInvalidDirection) {
			slog.WarnContext(ctx, "unexpected move failure", "direction", direction, "error", err)
		}
		writeJSON(ctx, w, moveResponse{
			Status:  statusError,
			Message: fmt.Sprintf("Invalid move: '%s'. Try 'east' or 'west'.", direction),
		})
		return
	}

	h.annotate(span, res.Location, res.Health)
	health := res.Health
	writeJSON(ctx, w, moveResponse{
		Status:  statusSuccess,
		Message: fmt.Sprintf("You travel %s to %s.", direction, res.Location),
		Health:  &health,
	})
}

func (h *Handler) handlePickup(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "pickup")
	defer span.End()

	res := h.game.Pickup(ctx)
	span.SetAttributes(
		attribute.String("game.item", res.Item.String()),
		attribute.Bool("game.item_added", res.Added),
	)

	msg := "The area is empty."
	if res.Added {
		msg = fmt.Sprintf("You found a %s!", res.Item)
	}

	writeJSON(ctx, w, pickupResponse{
		Message:   msg,
		Inventory: res.Inventory,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "health")
	defer span.End()

	snap := h.game.Snapshot()
	h.annotate(span, snap.Location, snap.Health)

	writeJSON(ctx, w, healthResponse{
		Health:   snap.Health,
		Location: snap.Location,
	})
}

func (h *Handler) annotate(span trace.Span, loc game.Location, health int) {
	span.SetAttributes(
		attribute.String("game.location", loc.String()),
		attribute.Int("game.health", health),
	)
}

// wantsText reports whether the client asked for the plain text landing page.
func wantsText(r *http.Request) bool {
	if r.URL.Query().Get("format") == "text" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/plain") && !strings.Contains(accept, "text/html")
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.WarnContext(ctx, "failed to write response", "error", err)
	}
}
