package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/identity"
	"github.com/pixil98/go-testutil"
)

type staticResolver struct {
	id identity.Identity
}

func (r staticResolver) Resolve(context.Context) identity.Identity {
	return r.id
}

// cyclePicker walks the catalog in order.
func cyclePicker() func(int) int {
	var mu sync.Mutex
	i := 0
	return func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		v := i % n
		i++
		return v
	}
}

func newTestHandler(t *testing.T, id identity.Identity, opts ...game.GameStateOpt) (*Handler, *game.GameState) {
	t.Helper()

	g := game.NewGameState(opts...)
	h, err := NewHandler(g, staticResolver{id: id})
	if err != nil {
		t.Fatalf("creating handler: %v", err)
	}
	return h, g
}

func doRequest(t *testing.T, h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// normalize collapses whitespace so wrapped text can be matched.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHandler_Move(t *testing.T) {
	tests := map[string]struct {
		target    string
		expStatus string
		expMsg    string
		expHealth bool
		expLoc    game.Location
	}{
		"east": {
			target:    "/move?to=east",
			expStatus: "success",
			expMsg:    "You travel east to EASTERN_JUNGLE.",
			expHealth: true,
			expLoc:    game.LocationEasternJungle,
		},
		"west": {
			target:    "/move?to=west",
			expStatus: "success",
			expMsg:    "You travel west to WESTERN_CAVES.",
			expHealth: true,
			expLoc:    game.LocationWesternCaves,
		},
		"north": {
			target:    "/move?to=north",
			expStatus: "error",
			expMsg:    "Invalid move: 'north'. Try 'east' or 'west'.",
			expLoc:    game.LocationCrossroads,
		},
		"missing direction": {
			target:    "/move",
			expStatus: "error",
			expMsg:    "Invalid move: 'nowhere'. Try 'east' or 'west'.",
			expLoc:    game.LocationCrossroads,
		},
		"empty direction": {
			target:    "/move?to=",
			expStatus: "error",
			expMsg:    "Invalid move: 'nowhere'. Try 'east' or 'west'.",
			expLoc:    game.LocationCrossroads,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, g := newTestHandler(t, identity.Identity{})

			rec := doRequest(t, h, tt.target, nil)
			testutil.AssertEqual(t, "http status", rec.Code, http.StatusOK)
			testutil.AssertEqual(t, "content type", rec.Header().Get("Content-Type"), "application/json")

			resp := decode[map[string]any](t, rec)
			testutil.AssertEqual(t, "status", resp["status"], any(tt.expStatus))
			testutil.AssertEqual(t, "message", resp["message"], any(tt.expMsg))

			health, ok := resp["health"]
			testutil.AssertEqual(t, "has health", ok, tt.expHealth)
			if tt.expHealth {
				testutil.AssertEqual(t, "health", health, any(float64(100)))
			}

			testutil.AssertEqual(t, "location", g.Snapshot().Location, tt.expLoc)
		})
	}
}

func TestHandler_Pickup(t *testing.T) {
	h, _ := newTestHandler(t, identity.Identity{}, game.WithPicker(cyclePicker()))

	exp := []struct {
		msg string
		inv []game.Item
	}{
		{msg: "You found a KEY!", inv: []game.Item{game.ItemKey}},
		{msg: "You found a SWORD!", inv: []game.Item{game.ItemKey, game.ItemSword}},
		{msg: "You found a SHIELD!", inv: []game.Item{game.ItemKey, game.ItemSword, game.ItemShield}},
		{msg: "You found a TORCH!", inv: game.Catalog[:]},
		{msg: "The area is empty.", inv: game.Catalog[:]},
	}

	for i, e := range exp {
		rec := doRequest(t, h, "/pickup", nil)
		testutil.AssertEqual(t, "http status", rec.Code, http.StatusOK)

		resp := decode[pickupResponse](t, rec)
		testutil.AssertEqual(t, "message", resp.Message, e.msg)
		if !slices.Equal(resp.Inventory, e.inv) {
			t.Errorf("pickup %d: inventory = %v, expected %v", i, resp.Inventory, e.inv)
		}
	}
}

func TestHandler_Health(t *testing.T) {
	h, g := newTestHandler(t, identity.Identity{})
	g.Regenerate(-15)

	rec := doRequest(t, h, "/health", nil)
	testutil.AssertEqual(t, "http status", rec.Code, http.StatusOK)
	testutil.AssertEqual(t, "body", strings.TrimSpace(rec.Body.String()), `{"health":85,"location":"CROSSROADS"}`)
}

func TestHandler_Index(t *testing.T) {
	tests := map[string]struct {
		id          identity.Identity
		target      string
		header      map[string]string
		expType     string
		expContains []string
		expMissing  []string
	}{
		"html with identity": {
			id:      identity.Identity{Host: "web-1", Zone: "us-east-1a", Replica: "0123456789abcdef"},
			target:  "/",
			expType: "text/html; charset=utf-8",
			expContains: []string{
				"<h2>Server: web-1 (us-east-1a)</h2>",
				"<strong>Crossroads</strong> (CROSSROADS)",
				"Health: 100/100",
				"Inventory: empty",
				"Replica 01234567.",
			},
		},
		"html without identity": {
			target:     "/",
			expType:    "text/html; charset=utf-8",
			expMissing: []string{"Server:"},
		},
		"text by query": {
			id:      identity.Identity{Host: "web-2"},
			target:  "/?format=text",
			expType: "text/plain; charset=utf-8",
			expContains: []string{
				"Server: web-2",
				"You stand at the Crossroads (CROSSROADS).",
				"You carry nothing.",
			},
			expMissing: []string{"<h1>"},
		},
		"text by accept header": {
			target:      "/",
			header:      map[string]string{"Accept": "text/plain"},
			expType:     "text/plain; charset=utf-8",
			expContains: []string{"ADVENTURE"},
		},
		"browser accept header": {
			target:      "/",
			header:      map[string]string{"Accept": "text/html,text/plain;q=0.8"},
			expType:     "text/html; charset=utf-8",
			expContains: []string{"<h1>Adventure</h1>"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, _ := newTestHandler(t, tt.id)

			rec := doRequest(t, h, tt.target, tt.header)
			testutil.AssertEqual(t, "http status", rec.Code, http.StatusOK)
			testutil.AssertEqual(t, "content type", rec.Header().Get("Content-Type"), tt.expType)

			body := normalize(rec.Body.String())
			for _, s := range tt.expContains {
				if !strings.Contains(body, s) {
					t.Errorf("expected body to contain %q, got:\n%s", s, body)
				}
			}
			for _, s := range tt.expMissing {
				if strings.Contains(body, s) {
					t.Errorf("expected body not to contain %q, got:\n%s", s, body)
				}
			}
		})
	}
}

func TestHandler_IndexShowsInventory(t *testing.T) {
	h, g := newTestHandler(t, identity.Identity{}, game.WithPicker(cyclePicker()))
	ctx := context.Background()
	g.Pickup(ctx)
	g.Pickup(ctx)
	if _, err := g.Move(ctx, "west"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := doRequest(t, h, "/", nil).Body.String()
	if !strings.Contains(body, "Inventory: KEY, SWORD") {
		t.Errorf("expected inventory in body, got:\n%s", body)
	}
	if !strings.Contains(body, "<strong>Western Caves</strong>") {
		t.Errorf("expected location in body, got:\n%s", body)
	}

	text := normalize(doRequest(t, h, "/?format=text", nil).Body.String())
	if !strings.Contains(text, "You carry key, sword.") {
		t.Errorf("expected inventory in text body, got:\n%s", text)
	}
}

func TestHandler_UnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t, identity.Identity{})

	testutil.AssertEqual(t, "unknown path", doRequest(t, h, "/dragon", nil).Code, http.StatusNotFound)
}

func TestHandler_Scenarios(t *testing.T) {
	h, _ := newTestHandler(t, identity.Identity{})

	// Fresh state.
	health := decode[healthResponse](t, doRequest(t, h, "/health", nil))
	testutil.AssertEqual(t, "initial location", health.Location, game.LocationCrossroads)
	testutil.AssertEqual(t, "initial health", health.Health, 100)
	page := doRequest(t, h, "/", nil).Body.String()
	if !strings.Contains(page, "Inventory: empty") {
		t.Errorf("expected empty inventory, got:\n%s", page)
	}

	// Move east.
	move := decode[moveResponse](t, doRequest(t, h, "/move?to=east", nil))
	testutil.AssertEqual(t, "east status", move.Status, "success")
	if !strings.Contains(move.Message, "EASTERN_JUNGLE") {
		t.Errorf("expected message to mention EASTERN_JUNGLE, got %q", move.Message)
	}
	if move.Health == nil || *move.Health != 100 {
		t.Errorf("expected health 100, got %v", move.Health)
	}
	health = decode[healthResponse](t, doRequest(t, h, "/health", nil))
	testutil.AssertEqual(t, "after east", health.Location, game.LocationEasternJungle)

	// Invalid move leaves everything as it was.
	move = decode[moveResponse](t, doRequest(t, h, "/move?to=north", nil))
	testutil.AssertEqual(t, "north status", move.Status, "error")
	after := decode[healthResponse](t, doRequest(t, h, "/health", nil))
	testutil.AssertEqual(t, "after north", after, health)
}

func TestHandler_ConcurrentPickups(t *testing.T) {
	h, g := newTestHandler(t, identity.Identity{})

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			rec := doRequest(t, h, "/pickup", nil)
			if rec.Code != http.StatusOK {
				t.Errorf("unexpected status %d", rec.Code)
			}
		})
	}
	wg.Wait()

	inv := g.Snapshot().Inventory
	if len(inv) > len(game.Catalog) {
		t.Fatalf("inventory has %d items", len(inv))
	}
	seen := map[game.Item]bool{}
	for _, item := range inv {
		if seen[item] {
			t.Errorf("duplicate item %s in %v", item, inv)
		}
		seen[item] = true
	}
}
