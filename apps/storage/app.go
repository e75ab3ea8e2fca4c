package storage

import (
	"github.com/getevo/evo/v2/lib/log"
)

// App represents the storage application
type App struct{}

// Register initializes the S3 connection
func (app App) Register() error {
	if err := Initialize(); err != nil {
		log.Warning("Failed to initialize object storage: %v", err)
	}
	return nil
}

func (app App) Router() error {
	return nil
}

func (app App) WhenReady() error {
	return nil
}

func (app App) Name() string {
	return "storage"
}
