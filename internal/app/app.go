package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsdevblog/shortlinks/internal/auth"
	"github.com/fsdevblog/shortlinks/internal/config"
	"github.com/fsdevblog/shortlinks/internal/controllers"
	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/hashid"
	"github.com/fsdevblog/shortlinks/internal/logs"
	"github.com/fsdevblog/shortlinks/internal/ratelimit"
	sqlrepo "github.com/fsdevblog/shortlinks/internal/repositories/sql"
	"github.com/fsdevblog/shortlinks/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	config config.Config
	conn   *gorm.DB
	Logger *logrus.Logger
}

func New(conf config.Config) (*App, error) {
	logger := logs.New(os.Stdout)

	conn, connErr := db.NewConnectionFactory(db.FactoryConfig{
		StorageType:  storageType(&conf),
		PostgresDSN:  conf.DatabaseDSN,
		SQLiteDBPath: conf.SQLitePath,
	})
	if connErr != nil {
		return nil, fmt.Errorf("init storage: %w", connErr)
	}

	return &App{
		config: conf,
		conn:   conn,
		Logger: logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run собирает слои приложения и запускает web сервер.
func (a *App) Run() error {
	codec, codecErr := hashid.New(a.config.HashSalt, a.config.HashMinLength)
	if codecErr != nil {
		return fmt.Errorf("init hash codec: %w", codecErr)
	}

	urlRepo := sqlrepo.NewURLRepo(a.conn, a.Logger)
	pasteRepo := sqlrepo.NewPasteRepo(a.conn, a.Logger)
	viewRepo := sqlrepo.NewViewRepo(a.conn, a.Logger)
	dimRepo := sqlrepo.NewDimRepo(a.conn, a.Logger)
	userRepo := sqlrepo.NewUserRepo(a.conn, a.Logger)

	urlService := services.NewURLService(urlRepo, codec, a.Logger)
	pasteService := services.NewPasteService(pasteRepo, codec, a.Logger)
	statsService := services.NewStatsService(viewRepo, dimRepo, a.Logger)

	ssoProvider := auth.NewSSOProvider(a.config.SSOAPIURL)
	authService := auth.NewAuthService(ssoProvider, userRepo, a.Logger)

	deps := controllers.RouterDeps{
		URLService:   urlService,
		PasteService: pasteService,
		StatsService: statsService,
		AuthService:  authService,
		Conn:         db.NewHealthChecker(a.conn),
		BaseURL:      a.config.BaseURL,
		Logger:       a.Logger,
	}

	if a.config.RedisDSN != "" {
		redisOpts, redisErr := redis.ParseURL(a.config.RedisDSN)
		if redisErr != nil {
			return fmt.Errorf("parse redis dsn: %w", redisErr)
		}
		store := ratelimit.NewRedisStore(redis.NewClient(redisOpts))
		deps.Limiter = ratelimit.NewLimiter(store, a.config.RateLimitRequests, a.config.RateLimitWindow, a.Logger)
	} else {
		a.Logger.Warn("redis dsn is not set, rate limiter is disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	server := controllers.SetupRouter(deps)

	go func() {
		if err := server.Run(a.config.ServerAddress); err != nil {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("router error")
	}

	return serverErr
}

func storageType(conf *config.Config) db.StorageType {
	if conf.DatabaseDSN != "" {
		return db.StorageTypePostgres
	}
	return db.StorageTypeSQLite
}
