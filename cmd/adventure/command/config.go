package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-adventure/internal/driver"
	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string          `json:"tick_interval"`
	Server       ServerConfig    `json:"server"`
	Events       EventsConfig    `json:"events"`
	Telemetry    TelemetryConfig `json:"telemetry"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	el.Add(c.Server.validate())
	el.Add(c.Events.validate())
	el.Add(c.Telemetry.validate())

	return el.Err()
}

func (c *Config) tickLength() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return driver.DefaultTickLength
	}
	return d
}
