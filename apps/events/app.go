package events

import (
	"github.com/getevo/evo/v2/lib/application"
	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/evo/v2/lib/settings"
)

// App represents the event fan-out application module
type App struct{}

var _ application.Application = (*App)(nil)

func (App) Register() error {
	return nil
}

func (App) Router() error {
	return nil
}

// WhenReady connects to NATS after application is fully initialized
func (App) WhenReady() error {
	if !settings.Get("NATS.ENABLED", true).Bool() {
		log.Notice("NATS event fan-out is disabled")
		return nil
	}

	reconnectWait, _ := settings.Get("NATS.RECONNECT_WAIT", "2s").Duration()
	drainTimeout, _ := settings.Get("NATS.DRAIN_TIMEOUT", "30s").Duration()

	config := Config{
		URL:            settings.Get("NATS.URL", "nats://localhost:4222").String(),
		MaxReconnects:  int(settings.Get("NATS.MAX_RECONNECTS", 60).Int64()),
		ReconnectWait:  reconnectWait,
		AllowReconnect: settings.Get("NATS.ALLOW_RECONNECT", true).Bool(),
		DrainTimeout:   drainTimeout,
	}

	if err := Connect(config); err != nil {
		// Events are best-effort; the portal works without them.
		log.Warning("NATS unavailable: %v", err)
	}

	return nil
}

func (App) Name() string {
	return "events"
}

// Shutdown gracefully closes the NATS connection
func (App) Shutdown() error {
	return Close()
}
