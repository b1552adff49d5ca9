package command

import (
	"fmt"

	"github.com/pixil98/go-adventure/internal/driver"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/identity"
	"github.com/pixil98/go-adventure/internal/messaging"
	"github.com/pixil98/go-adventure/internal/web"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	resolver := identity.NewResolver()
	workers := service.WorkerList{
		"telemetry": cfg.Telemetry.buildProvider(resolver.Replica()),
	}

	// Optional event bus
	var stateOpts []game.GameStateOpt
	if cfg.Events.Enabled {
		natsServer, err := cfg.Events.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = natsServer
		stateOpts = append(stateOpts, game.WithPublisher(messaging.NewEventPublisher(natsServer, resolver.Replica())))

		if cfg.Events.LogEvents {
			workers["event-log"] = messaging.NewEventLog(natsServer)
		}
	}

	// The one game shared by every request this process serves
	state := game.NewGameState(stateOpts...)

	handler, err := web.NewHandler(state, resolver)
	if err != nil {
		return nil, fmt.Errorf("creating request handler: %w", err)
	}
	server, err := cfg.Server.buildServer(handler)
	if err != nil {
		return nil, fmt.Errorf("creating http server: %w", err)
	}
	workers["http"] = server

	workers["driver"] = driver.NewDriver(
		[]driver.Manager{state},
		driver.WithTickLength(cfg.tickLength()),
	)

	return workers, nil
}
