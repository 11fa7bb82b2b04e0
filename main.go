package main

import (
	"context"

	"NeuroScanAI/config"
	"NeuroScanAI/jobs"
	"NeuroScanAI/migrations"
	"NeuroScanAI/routes"
	"NeuroScanAI/server"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	startServer = server.Start
	loadConfig  = config.Load
	isTest      = false
)

func main() {
	run()
}

func run() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("Error in loading the config: ", err)
	}

	defaultopts := server.GetDefaultOptions(cfg)

	options := server.Options{
		Config:           cfg,
		CacheEnabled:     defaultopts.CacheEnabled,
		MongoEnabled:     defaultopts.MongoEnabled,
		WebServerEnabled: defaultopts.WebServerEnabled,
		WebServerPort:    defaultopts.WebServerPort,

		JobsEnabled: defaultopts.JobsEnabled && !isTest,
		JobsHandler: func(app *server.App) {
			if isTest {
				return
			}
			reporter := jobs.NewReporter(app.Appointments, cfg.PendingStaleAfter)
			c, err := jobs.StartDailyScheduler(cfg.PendingReportSchedule, reporter)
			if err != nil {
				log.Println("Error while scheduling the pending report:", err)
				return
			}
			app.OnShutdown(func() { c.Stop() })
		},

		MigrationEnabled: defaultopts.MigrationEnabled && !isTest,
		MigrationHandler: func(app *server.App) error {
			if isTest {
				return nil
			}
			return migrations.Run(context.Background(), app.DB)
		},

		WebServerPreHandler: func(r *gin.Engine, app *server.App) {
			r.Use(cors.New(cors.Config{
				AllowOrigins:     []string{cfg.FrontendURL},
				AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
				AllowCredentials: true,
			}))
			routes.Routes(r, routes.Deps{
				Users:        app.UserService,
				Appointments: app.AppointmentService,
				Chats:        app.ChatService,
				JWTSecret:    cfg.JWTSecret,
				Limiter:      app.Limiter,
			})
		},
	}
	startServer(options)
}
