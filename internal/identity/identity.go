// Package identity resolves which server answered a request. Every value is
// advisory: nothing here is allowed to fail a request.
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

// zonePattern matches cloud availability zone tokens such as us-east-1a.
var zonePattern = regexp.MustCompile(`[a-z]{2}-[a-z]+-[0-9][a-z]`)

// Environment holds the optional overrides read at request time.
type Environment struct {
	Hostname string `env:"ADVENTURE_HOSTNAME"`
	Zone     string `env:"AVAILABILITY_ZONE"`
}

// Identity describes a server replica. Empty fields could not be resolved.
type Identity struct {
	Host    string
	Zone    string
	Replica string
}

// Label renders the identity for display, e.g. "web-1 (us-east-1a)".
func (i Identity) Label() string {
	switch {
	case i.Host != "" && i.Zone != "":
		return fmt.Sprintf("%s (%s)", i.Host, i.Zone)
	case i.Host != "":
		return i.Host
	default:
		return i.Zone
	}
}

// Resolver looks up the server identity.
type Resolver struct {
	replica  string
	hostname func() (string, error)
}

// NewResolver creates a Resolver with a fresh replica id.
func NewResolver(opts ...ResolverOpt) *Resolver {
	r := &Resolver{
		replica:  uuid.New().String(),
		hostname: os.Hostname,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Replica returns the id generated for this process.
func (r *Resolver) Replica() string {
	return r.replica
}

// Resolve reads the environment and host name. Failures are logged and leave
// the affected field empty.
func (r *Resolver) Resolve(ctx context.Context) Identity {
	id := Identity{Replica: r.replica}

	var e Environment
	if err := env.Parse(&e); err != nil {
		slog.DebugContext(ctx, "parsing identity environment", "error", err)
	}

	id.Host = e.Hostname
	if id.Host == "" {
		host, err := r.hostname()
		if err != nil {
			slog.DebugContext(ctx, "resolving hostname", "error", err)
		} else {
			id.Host = host
		}
	}

	id.Zone = e.Zone
	if id.Zone == "" {
		id.Zone = zonePattern.FindString(id.Host)
	}

	return id
}

type ResolverOpt func(*Resolver)

// WithHostname replaces os.Hostname.
func WithHostname(fn func() (string, error)) ResolverOpt {
	return func(r *Resolver) {
		r.hostname = fn
	}
}

// WithReplica fixes the replica id instead of generating one.
func WithReplica(id string) ResolverOpt {
	return func(r *Resolver) {
		r.replica = id
	}
}
