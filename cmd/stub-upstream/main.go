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
	"github.com/lk2023060901/ai-summarizer/internal/stub"
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

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    config.Stub.Addr(),
		Handler: stub.NewRouter(log),
	}

	go func() {
		log.Info("starting stub upstream", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start stub upstream", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("stub upstream forced to shutdown", zap.Error(err))
	}
	log.Info("stub upstream exited")
}
