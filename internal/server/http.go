package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-summarizer/internal/conf"
	"github.com/lk2023060901/ai-summarizer/internal/gateway/service"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/middleware"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/response"
	"go.uber.org/zap"
)

// APIMiddleware runs in front of the /api routes only
type APIMiddleware []gin.HandlerFunc

type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

// NewRouter assembles the gateway routes
func NewRouter(config *conf.Config, log *logger.Logger, gateway *service.GatewayService, apiMiddleware APIMiddleware) *gin.Engine {
	router := gin.New()
	router.Use(logger.GinRecoveryWithHandler(log, response.ForwardFailed))
	router.Use(logger.GinLoggerWithConfig(log, logger.MiddlewareOptions{
		SkipPaths: []string{"/health"},
	}))
	router.Use(middleware.CORS(config.CORS))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api", apiMiddleware...)
	gateway.RegisterRoutes(api)

	return router
}

func NewHTTPServer(config *conf.Config, log *logger.Logger, gateway *service.GatewayService, apiMiddleware APIMiddleware) *HTTPServer {
	if config.Server.Mode != "" {
		gin.SetMode(config.Server.Mode)
	}

	return &HTTPServer{
		server: &http.Server{
			Addr:         config.Server.Addr(),
			Handler:      NewRouter(config, log, gateway, apiMiddleware),
			ReadTimeout:  config.Server.ReadTimeout,
			WriteTimeout: config.Server.WriteTimeout,
		},
		logger: log,
	}
}

// Handler returns the root handler
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address
func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
