package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mleonec/notibot/config"
	"github.com/mleonec/notibot/internal/bot"
	repository "github.com/mleonec/notibot/internal/database/postgres"
	"github.com/mleonec/notibot/internal/entity"
	"github.com/mleonec/notibot/internal/service"
	"github.com/mleonec/notibot/internal/transport"
	"github.com/mleonec/notibot/internal/worker"

	"github.com/mleonec/notibot/pkg/notion"
	"github.com/mleonec/notibot/pkg/postgres"
	"github.com/mleonec/notibot/pkg/queue"
	"github.com/mleonec/notibot/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// logAnnouncer stands in for the Discord announcer when the bot is
// disabled; new events are still persisted and logged.
type logAnnouncer struct{}

func (logAnnouncer) AnnounceEvent(_ context.Context, event *entity.Event) error {
	logrus.Infof("Announcement suppressed (discord disabled): %s", event.Title)
	return nil
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo)
	participationService := service.NewParticipationService(eventRepo, userService)

	// Initialize Discord bot
	var discordBot *bot.Bot
	var directAnnouncer service.Announcer = logAnnouncer{}
	if cfg.Discord.Enabled && cfg.Discord.BotToken != "" {
		discordBot, err = bot.New(&cfg.Discord, eventService, userService, participationService)
		if err != nil {
			logrus.Fatalf("Failed to initialize Discord bot: %v", err)
		}
		directAnnouncer = discordBot
		logrus.Info("Discord bot initialized")
	} else {
		logrus.Warn("Discord bot token not provided, notifications disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Announcements go through the Redis queue when one is configured so
	// delivery failures are retried; otherwise the reconciler announces
	// directly.
	announcer := directAnnouncer
	if cfg.Redis.Enabled {
		redisClient := redis.NewRedisClient(&cfg.Redis)

		redisQueue, err := queue.NewRedisQueue(redisClient, nil, nil, nil)
		if err != nil {
			logrus.Errorf("Failed to initialize Redis queue: %v. Continuing without queue...", err)
		} else {
			defer redisQueue.Close()
			announcer = service.NewQueueAnnouncer(redisQueue)

			taskHandler := service.NewTaskHandler(eventRepo, directAnnouncer)
			if err := redisQueue.Subscribe(ctx, taskHandler.HandleTask); err != nil {
				logrus.Errorf("Queue subscriber error: %v", err)
			}
			logrus.Info("Redis announcement queue initialized")
		}
	}

	// Initialize the reconciler and its worker
	notionClient := notion.NewClient(&cfg.Notion)
	syncService := service.NewSyncService(notionClient, eventRepo, announcer, cfg.Sync.Since, cfg.Sync.PageSize)

	syncWorker := worker.NewSyncWorker(syncService, cfg.Sync.Interval)
	go syncWorker.Start(ctx)

	// Connect to Discord after everything is wired
	if discordBot != nil {
		if err := discordBot.Start(); err != nil {
			logrus.Fatalf("Failed to start Discord bot: %v", err)
		}
		defer discordBot.Close()
	}

	// Initialize admin API handlers
	eventHandler := transport.NewEventHandler(eventService)
	userHandler := transport.NewUserHandler(userService)
	syncHandler := transport.NewSyncHandler(syncService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(eventHandler, userHandler, syncHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
