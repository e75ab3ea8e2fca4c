package models

import (
	"github.com/getevo/evo/v2/lib/db"
)

type App struct{}

func (a App) Register() error {
	// Register models with GORM; table creation itself goes through the
	// idempotent DDL in Ensure so the SQL matches the provider's schema.
	db.UseModel(Role{})
	db.UseModel(User{})
	db.UseModel(Complaint{})

	return nil
}

func (a App) Router() error {
	return nil
}

func (a App) WhenReady() error {
	return nil
}

func (a App) Name() string {
	return "models"
}
