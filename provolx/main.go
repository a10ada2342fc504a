package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"provolx/provolx/config"
	"provolx/provolx/controllers"
	"provolx/provolx/routes"
	"provolx/provolx/services/llm"
	"provolx/provolx/utils/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogDir)
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gen, err := llm.New(ctx, cfg)
	cancel()
	if err != nil {
		logging.ErrorLogger.Error("llm client error", zap.Error(err))
		os.Exit(1)
	}

	healthCtrl := controllers.NewHealthController(gen.Model())
	chatCtrl := controllers.NewChatController(gen)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: routes.NewRouter(cfg, healthCtrl, chatCtrl),
	}
	go func() {
		logging.AppLogger.Info("server listening",
			zap.String("addr", srv.Addr), zap.String("provider", cfg.Provider), zap.String("model", gen.Model()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
		return
	}
	logging.AppLogger.Info("server shutdown complete")
}
