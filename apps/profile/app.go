package profile

import (
	"github.com/getevo/evo/v2"
)

type App struct{}

func (a App) Register() error {
	return nil
}

func (a App) Router() error {
	var controller Controller

	evo.Put("/api/profile/name", controller.UpdateName)
	evo.Put("/api/profile/password", controller.UpdatePassword)
	evo.Put("/api/profile/preferences", controller.UpdatePreferences)

	return nil
}

func (a App) WhenReady() error { return nil }

func (a App) Name() string { return "profile" }
