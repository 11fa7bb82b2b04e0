package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"NeuroScanAI/config"
	"NeuroScanAI/config/db"
	"NeuroScanAI/config/redis"
	"NeuroScanAI/logger"
	"NeuroScanAI/middleware"
	"NeuroScanAI/repository"
	"NeuroScanAI/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

type Options struct {
	Config *config.Config

	MongoEnabled     bool
	CacheEnabled     bool
	WebServerEnabled bool
	WebServerPort    string

	JobsEnabled bool
	JobsHandler func(app *App)

	MigrationEnabled bool
	MigrationHandler func(app *App) error

	WebServerPreHandler func(r *gin.Engine, app *App)
}

// App is everything the handlers, jobs and migrations share.
type App struct {
	Config *config.Config
	DB     *mongo.Database

	Users        repository.UserRepository
	Appointments repository.AppointmentRepository
	Chats        repository.ChatRepository

	UserService        *services.UserService
	AppointmentService *services.AppointmentService
	ChatService        *services.ChatService
	Limiter            *middleware.RateLimiter

	closers []func()
}

// OnShutdown registers fn to run after the web server has stopped.
func (a *App) OnShutdown(fn func()) {
	a.closers = append(a.closers, fn)
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func GetDefaultOptions(cfg *config.Config) Options {
	return Options{
		Config:           cfg,
		MongoEnabled:     cfg.MongoEnabled,
		CacheEnabled:     cfg.CacheEnabled,
		WebServerEnabled: true,
		WebServerPort:    cfg.Port,
		JobsEnabled:      cfg.JobsEnabled,
		MigrationEnabled: cfg.MongoEnabled,
	}
}

/*
* Open the stores, MongoDB or in memory
* Open the cache, falling back to none when redis is down
* Build the services
 */
func Build(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	app := &App{Config: cfg}

	if opts.MongoEnabled {
		client, database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
		if err != nil {
			return nil, err
		}
		app.OnShutdown(func() { db.Disconnect(client) })
		app.DB = database
		app.Users = repository.NewMongoUserRepository(database)
		app.Appointments = repository.NewMongoAppointmentRepository(database)
		app.Chats = repository.NewMongoChatRepository(database)
	} else {
		log.Warn("MongoDB disabled, using in-memory stores")
		app.Users = repository.NewMemoryUserRepository()
		app.Appointments = repository.NewMemoryAppointmentRepository()
		app.Chats = repository.NewMemoryChatRepository()
	}

	var cache redis.Cache = redis.NoopCache{}
	if opts.CacheEnabled {
		rc, err := redis.NewRedisCache(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Println("Error from NewRedisCache, continuing without cache:", err)
		} else {
			app.OnShutdown(func() { _ = rc.Close() })
			cache = rc
		}
	}

	app.UserService = services.NewUserService(app.Users, cache, cfg.JWTSecret, cfg.JWTTTL)
	app.AppointmentService = services.NewAppointmentService(app.Appointments, app.UserService, cfg.StrictTransitions)
	app.ChatService = services.NewChatService(app.Chats, app.UserService)
	app.Limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	return app, nil
}

// NewEngine returns gin with recovery, request logging and metrics, then runs the pre-handler.
func NewEngine(app *App, pre func(r *gin.Engine, app *App)) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	if pre != nil {
		pre(r, app)
	}
	return r
}

/*
* Build the app and run migrations and jobs when enabled
* Serve until SIGINT or SIGTERM
* Shut down gracefully
 */
func Start(opts Options) {
	cfg := opts.Config
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := Build(ctx, opts)
	if err != nil {
		log.Fatal("Error while starting the server: ", err)
	}
	defer app.Close()

	if opts.MigrationEnabled && opts.MigrationHandler != nil && app.DB != nil {
		if err := opts.MigrationHandler(app); err != nil {
			log.Fatal("Migration failed: ", err)
		}
	}
	if opts.JobsEnabled && opts.JobsHandler != nil {
		opts.JobsHandler(app)
	}
	go app.Limiter.Janitor(ctx, time.Minute, 10*time.Minute)

	if !opts.WebServerEnabled {
		<-ctx.Done()
		return
	}

	srv := &http.Server{
		Addr:              ":" + opts.WebServerPort,
		Handler:           NewEngine(app, opts.WebServerPreHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("port", opts.WebServerPort).Info("Server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed: ", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Error during shutdown:", err)
	}
}
