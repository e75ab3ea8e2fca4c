package redis

import (
	"github.com/getevo/evo/v2/lib/application"
	"github.com/getevo/evo/v2/lib/log"
)

// App represents the Redis application module
type App struct{}

var _ application.Application = (*App)(nil)

func (App) Register() error {
	return nil
}

func (App) Router() error {
	return nil
}

// WhenReady connects to Redis after application is fully initialized
func (App) WhenReady() error {
	if err := Initialize(); err != nil {
		log.Error("Failed to connect to Redis: %v", err)
	}
	return nil
}

func (App) Name() string {
	return "redis"
}

// Shutdown gracefully closes the Redis connection
func (App) Shutdown() error {
	return Close()
}
