package command

import (
	"fmt"
	"net/url"

	"github.com/pixil98/go-adventure/internal/telemetry"
	"github.com/pixil98/go-errors"
)

const defaultServiceName = "adventure"

type TelemetryConfig struct {
	Enabled     bool   `json:"enabled"`
	Endpoint    string `json:"endpoint"`
	ServiceName string `json:"service_name"`
}

func (c *TelemetryConfig) validate() error {
	el := errors.NewErrorList()

	if c.Enabled {
		if c.Endpoint == "" {
			el.Add(fmt.Errorf("telemetry endpoint is required when enabled"))
		} else if _, err := url.ParseRequestURI(c.Endpoint); err != nil {
			el.Add(fmt.Errorf("parsing telemetry endpoint: %w", err))
		}
	}

	return el.Err()
}

func (c *TelemetryConfig) buildProvider(replica string) *telemetry.Provider {
	if !c.Enabled {
		return telemetry.NewProvider("", "", replica)
	}

	name := c.ServiceName
	if name == "" {
		name = defaultServiceName
	}
	return telemetry.NewProvider(c.Endpoint, name, replica)
}
