package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/getevo/evo/v2/lib/log"
	"github.com/nats-io/nats.go"
)

var (
	mu sync.RWMutex
	nc *nats.Conn
)

// Config holds the NATS connection configuration.
type Config struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	AllowReconnect bool
	DrainTimeout   time.Duration
}

// Connect establishes the NATS connection used for portal event fan-out.
func Connect(config Config) error {
	opts := []nats.Option{
		nats.Name("portal-backend"),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(c *nats.Conn, err error) {
			if err != nil {
				log.Warning("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected to %s", c.ConnectedUrl())
		}),
	}

	if !config.AllowReconnect {
		opts = append(opts, nats.NoReconnect())
	}
	if config.DrainTimeout > 0 {
		opts = append(opts, nats.DrainTimeout(config.DrainTimeout))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", config.URL, err)
	}

	mu.Lock()
	nc = conn
	mu.Unlock()

	log.Info("Connected to NATS at %s", conn.ConnectedUrl())
	return nil
}

// Connection returns the NATS connection or nil.
func Connection() *nats.Conn {
	mu.RLock()
	defer mu.RUnlock()
	return nc
}

// IsConnected checks if NATS is connected.
func IsConnected() bool {
	conn := Connection()
	return conn != nil && conn.IsConnected()
}

// Close drains and closes the connection.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if nc == nil {
		return nil
	}

	if err := nc.Drain(); err != nil {
		log.Warning("Error draining NATS connection: %v", err)
		nc.Close()
	}
	nc = nil
	return nil
}
