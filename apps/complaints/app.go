package complaints

import (
	"github.com/getevo/evo/v2"
	"github.com/stafflink/portal-backend/apps/auth"
)

type App struct{}

func (a App) Register() error {
	return nil
}

func (a App) Router() error {
	var controller Controller

	evo.Get("/api/complaints", controller.List)
	evo.Get("/api/complaints/mine", controller.Mine)

	// Multipart submission goes on the fiber router directly; evo handlers
	// do not expose the parsed multipart form.
	router := evo.GetFiber()
	router.Post("/api/complaints", auth.RequireAuth, Create)

	return nil
}

func (a App) WhenReady() error { return nil }

func (a App) Name() string { return "complaints" }
