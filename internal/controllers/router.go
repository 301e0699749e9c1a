package controllers

import (
	"context"
	"net/url"

	"github.com/fsdevblog/shortlinks/internal/auth"
	"github.com/fsdevblog/shortlinks/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthProvider проверка токена и резолв личности запроса.
type AuthProvider interface {
	Authenticate(ctx context.Context, token string) (*auth.Identity, error)
}

// RateLimiter учет запроса клиента к группе маршрутов.
type RateLimiter interface {
	Check(ctx context.Context, client, route string) error
}

// RouterDeps зависимости HTTP слоя.
type RouterDeps struct {
	URLService   *services.URLService
	PasteService *services.PasteService
	StatsService *services.StatsService
	AuthService  AuthProvider
	Limiter      RateLimiter
	Conn         ConnectionChecker
	BaseURL      *url.URL
	Logger       *logrus.Logger
}

// Router держит зависимости миддлваре. Хендлеры живут в контроллерах.
type Router struct {
	authService AuthProvider
	limiter     RateLimiter
}

func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(loggerMiddleware(deps.Logger))

	router := &Router{
		authService: deps.AuthService,
		limiter:     deps.Limiter,
	}

	urlsController := NewURLsController(deps.URLService, deps.StatsService, deps.BaseURL, deps.Logger)
	pastesController := NewPastesController(deps.PasteService, deps.StatsService, deps.BaseURL, deps.Logger)

	pingController := NewPingController(deps.Conn)
	r.GET("/ping", pingController.Ping)

	// Мутирующие маршруты требуют токен: аноним получает AUTH_REQUIRED,
	// а не Forbidden из проверки владельца.
	urls := r.Group("/urls", router.rateLimitMiddleware("urls"), router.authMiddleware(false))
	{
		urls.POST("/", urlsController.Create)
		urls.GET("/", router.authMiddleware(true), urlsController.List)
		urls.GET("/:hash", urlsController.Info)
		urls.DELETE("/:hash", router.authMiddleware(true), urlsController.Delete)
		urls.GET("/:hash/open", urlsController.Open)
		urls.GET("/:hash/stats", urlsController.Stats)
		urls.DELETE("/:hash/stats", router.authMiddleware(true), urlsController.ClearStats)
		urls.GET("/:hash/qr", urlsController.QR)
	}

	pastes := r.Group("/pastes", router.rateLimitMiddleware("pastes"), router.authMiddleware(false))
	{
		pastes.POST("/", pastesController.Create)
		pastes.GET("/", router.authMiddleware(true), pastesController.List)
		pastes.GET("/:hash", pastesController.Read)
		pastes.DELETE("/:hash", router.authMiddleware(true), pastesController.Delete)
		pastes.PATCH("/:hash", router.authMiddleware(true), pastesController.Patch)
		pastes.GET("/:hash/stats", pastesController.Stats)
		pastes.DELETE("/:hash/stats", router.authMiddleware(true), pastesController.ClearStats)
	}

	// Короткий публичный редирект, вне /urls группы.
	r.GET("/:hash", urlsController.Open)

	return r
}
