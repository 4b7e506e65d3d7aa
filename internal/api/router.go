package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workbridge/freelance-api/internal/api/handler"
	"github.com/workbridge/freelance-api/internal/api/middleware"
	"github.com/workbridge/freelance-api/internal/core/domain"
	"github.com/workbridge/freelance-api/internal/core/ports"
)

// Services bundles the core services the router exposes over HTTP.
type Services struct {
	Auth      ports.AuthService
	Projects  ports.ProjectService
	Responses ports.ResponseService
	Chats     ports.ChatService
	Portfolio ports.PortfolioService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("freelance"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	projectHandler := handler.NewProjectHandler(svc.Projects)
	responseHandler := handler.NewResponseHandler(svc.Responses)
	chatHandler := handler.NewChatHandler(svc.Chats)
	portfolioHandler := handler.NewPortfolioHandler(svc.Portfolio)

	authRequired := middleware.Auth(jwtSecret)
	customerOnly := middleware.RequireRole(domain.RoleCustomer)
	executorOnly := middleware.RequireRole(domain.RoleExecutor)

	// --- Identity ---
	users := e.Group("/api/users")
	users.POST("", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("", authHandler.ListUsers, authRequired)
	users.GET("/profile", authHandler.Profile, authRequired)
	users.PUT("/profile", authHandler.UpdateProfile, authRequired)

	// --- Projects ---
	projects := e.Group("/api/projects")
	projects.GET("", projectHandler.List)
	projects.GET("/mine", projectHandler.Mine, authRequired)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("", projectHandler.Create, authRequired, customerOnly)
	projects.PUT("/:id", projectHandler.Update, authRequired)
	projects.DELETE("/:id", projectHandler.Delete, authRequired)
	projects.POST("/:id/messages", projectHandler.AddMessage, authRequired)
	projects.GET("/:id/responses", responseHandler.ListForProject, authRequired)
	projects.GET("/:id/responses/new-count", responseHandler.NewCount, authRequired)

	// --- Responses ---
	responses := e.Group("/api/responses", authRequired)
	responses.POST("", responseHandler.Create, executorOnly)
	responses.GET("/mine", responseHandler.Mine)
	responses.PATCH("/:id/status", responseHandler.SetStatus)
	responses.POST("/:id/approve", responseHandler.Approve)
	responses.POST("/:id/cancel", responseHandler.Cancel)

	// --- Chats ---
	chats := e.Group("/api/chats", authRequired)
	chats.POST("", chatHandler.Open)
	chats.GET("", chatHandler.List)
	chats.GET("/:id", chatHandler.Get)
	chats.GET("/:id/unread", chatHandler.Unread)
	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.POST("/:id/read", chatHandler.MarkRead)

	// --- Portfolio ---
	portfolio := e.Group("/api/portfolio", authRequired)
	portfolio.GET("", portfolioHandler.Get)
	portfolio.GET("/:userId", portfolioHandler.Get)
	portfolio.POST("", portfolioHandler.AddItem)
	portfolio.PUT("/:itemId", portfolioHandler.UpdateItem)
	portfolio.DELETE("/:itemId", portfolioHandler.DeleteItem)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
