package command

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pixil98/go-adventure/internal/web"
	"github.com/pixil98/go-errors"
)

type ServerConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	ShutdownTimeout string `json:"shutdown_timeout"`
}

func (c *ServerConfig) validate() error {
	el := errors.NewErrorList()

	if c.Port < 0 || c.Port > 65535 {
		el.Add(fmt.Errorf("server port %d out of range", c.Port))
	}

	if c.ShutdownTimeout != "" {
		_, err := time.ParseDuration(c.ShutdownTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing shutdown_timeout: %w", err))
		}
	}

	return el.Err()
}

func (c *ServerConfig) buildServer(handler http.Handler) (*web.Server, error) {
	opts := []web.ServerOpt{web.WithHost(c.Host)}
	if c.Port != 0 {
		opts = append(opts, web.WithPort(c.Port))
	}
	if c.ShutdownTimeout != "" {
		d, err := time.ParseDuration(c.ShutdownTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing shutdown_timeout: %w", err)
		}
		opts = append(opts, web.WithShutdownTimeout(d))
	}

	return web.NewServer(handler, opts...), nil
}
