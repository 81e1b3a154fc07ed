package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-summarizer/internal/conf"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
	"github.com/lk2023060901/ai-summarizer/internal/ui"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", conf.DefaultConfigPath, "config file path")
	envFile    = flag.String("env", ".env", "env file path")
)

func main() {
	flag.Parse()

	if err := conf.LoadEnvFiles(*envFile); err != nil {
		panic(err.Error())
	}

	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&config.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	gin.SetMode(config.Server.Mode)

	gateway := ui.NewGatewayClient(config.Web.GatewayURL, config.Web.Timeout, log)
	format, err := ui.ParseSummaryFormat(config.Web.SummaryFormat)
	if err != nil {
		log.Fatal("invalid web.summary_format", zap.Error(err))
	}

	handler := ui.NewHandler(gateway, ui.HandlerConfig{
		MaxUploadBytes: config.Server.MaxUploadBytes,
		SummaryFormat:  format,
	}, log)
	router, err := ui.NewRouter(handler, log)
	if err != nil {
		log.Fatal("failed to load templates", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    config.Web.Addr(),
		Handler: router,
	}

	go func() {
		log.Info("starting web UI",
			zap.String("addr", srv.Addr),
			zap.String("gateway", config.Web.GatewayURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start web UI", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("web UI forced to shutdown", zap.Error(err))
	}
	log.Info("web UI exited")
}
