package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lk2023060901/ai-summarizer/internal/conf"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/injector"
	"github.com/lk2023060901/ai-summarizer/internal/pkg/logger"
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

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := config.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}

	log, err := logger.New(&config.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("config loaded successfully",
		zap.String("addr", config.Server.Addr()),
		zap.String("upstream", config.Upstream.BaseURL),
	)

	app, cleanup, err := injector.InitializeApp(config, log)
	if err != nil {
		log.Fatal("failed to initialize app", zap.Error(err))
	}
	defer cleanup()

	go func() {
		if err := app.HTTPServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("gateway started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	if err := app.HTTPServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("gateway exited")
}
