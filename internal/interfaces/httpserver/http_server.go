package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	botgptdocs "github.com/Aishjainam-coder/Bot-GPT-TASK/docs/swagger"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/config"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/auth"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/metrics"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/handlers"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/middlewares"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/responses"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/routes"
)

// Dependencies are the collaborators the HTTP layer serves.
type Dependencies struct {
	Conversations conversation.Service
	Documents     document.Service
	Users         middlewares.UserResolver
	Auth          *auth.Validator
	// Ready reports whether backing stores are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// New constructs the HTTP server with default middleware and routes.
func New(cfg *config.Config, log zerolog.Logger, deps Dependencies) *HttpServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	botgptdocs.SwaggerInfo.Title = cfg.ServiceName
	botgptdocs.SwaggerInfo.BasePath = "/"

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middlewares.RequestID())
	engine.Use(middlewares.TracingMiddleware(cfg.ServiceName))
	engine.Use(middlewares.LoggingMiddleware(log))
	engine.Use(middlewares.MetricsMiddleware())
	engine.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))

	handlerProvider := handlers.NewProvider(deps.Conversations, deps.Documents, log)
	routeProvider := routes.NewProvider(handlerProvider)

	registerPublicRoutes(engine, cfg, deps.Ready)

	protected := engine.Group("/")
	protected.Use(deps.Auth.Middleware())
	protected.Use(middlewares.Identity(deps.Users, cfg.DefaultUsername))
	routeProvider.Register(protected)

	return &HttpServer{
		cfg:    cfg,
		engine: engine,
		log:    log,
	}
}

// Handler exposes the engine for tests and embedding.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerPublicRoutes(engine *gin.Engine, cfg *config.Config, ready func(ctx context.Context) error) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.ServiceName,
			"status":  "ok",
		})
	})

	health := healthHandler(cfg.ServiceName)
	engine.GET("/health", health)
	engine.GET("/api/v1/health", health)
	engine.GET("/healthz", health)

	engine.GET("/readyz", func(c *gin.Context) {
		if ready != nil {
			if err := ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthHandler handles GET /health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} responses.HealthResponse
// @Router /health [get]
func healthHandler(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, responses.HealthResponse{Status: "healthy", Service: serviceName})
	}
}
