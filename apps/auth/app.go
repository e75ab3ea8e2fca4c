package auth

import (
	"os"

	"github.com/getevo/evo/v2"
	"github.com/getevo/evo/v2/lib/args"
	"github.com/stafflink/portal-backend/lib/gotrue"
)

type App struct{}

func (a App) Register() error {
	// Initialize the provider client and JWT secret after settings are loaded
	if err := gotrue.Initialize(); err != nil {
		return err
	}
	InitializeJWTSecret()

	// Check for user creation command
	if args.Exists("--create-user") {
		CreateUser()
		os.Exit(0)
	}

	return nil
}

func (a App) Router() error {
	var controller Controller

	evo.Post("/api/auth/signup", controller.SignUp)
	evo.Post("/api/auth/signin", controller.SignIn)
	evo.Post("/api/auth/signout", controller.SignOut)
	evo.Get("/api/auth/me", controller.Me)
	evo.Get("/api/auth/roles/:department", controller.RolesByDepartment)

	return nil
}

func (a App) WhenReady() error { return nil }

func (a App) Name() string { return "auth" }
