package main

import (
	"github.com/getevo/evo/v2"
	"github.com/getevo/evo/v2/lib/application"
	"github.com/stafflink/portal-backend/apps/auth"
	"github.com/stafflink/portal-backend/apps/complaints"
	"github.com/stafflink/portal-backend/apps/events"
	"github.com/stafflink/portal-backend/apps/models"
	"github.com/stafflink/portal-backend/apps/profile"
	"github.com/stafflink/portal-backend/apps/redis"
	"github.com/stafflink/portal-backend/apps/storage"
	"github.com/stafflink/portal-backend/apps/system"
	"github.com/stafflink/portal-backend/apps/team"
)

func main() {
	evo.Setup()

	var apps = application.GetInstance()
	apps.Register(system.App{}, models.App{}, redis.App{}, events.App{}, storage.App{}, auth.App{}, complaints.App{}, team.App{}, profile.App{})

	evo.Run()
}
