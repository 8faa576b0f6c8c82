package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dtroode/todo-server/internal/api/grpc/handler"
	grpcRouter "github.com/dtroode/todo-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/todo-server/internal/api/grpc/server"
	httpctx "github.com/dtroode/todo-server/internal/api/http/context"
	httpHandler "github.com/dtroode/todo-server/internal/api/http/handler"
	httpRouter "github.com/dtroode/todo-server/internal/api/http/router"
	httpServer "github.com/dtroode/todo-server/internal/api/http/server"
	"github.com/dtroode/todo-server/internal/config"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/password"
	"github.com/dtroode/todo-server/internal/repository/postgres"
	"github.com/dtroode/todo-server/internal/server"
	"github.com/dtroode/todo-server/internal/service"
	"github.com/dtroode/todo-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	logAppVersion()

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	todoRepo := postgres.NewTodoRepository(db)

	tokenManager := token.NewJWT(
		cfg.AccessToken.Secret,
		cfg.RefreshToken.Secret,
		cfg.AccessToken.Expiry.Duration(),
		cfg.RefreshToken.Expiry.Duration(),
	)
	hasher := password.NewBcrypt(cfg.BcryptCost)

	authService := service.NewAuth(userRepo, hasher, tokenManager, logger)
	todoService := service.NewTodo(todoRepo, logger)

	routes := httpRouter.New(
		authService,
		authService,
		todoService,
		httpctx.NewManager(),
		httpRouter.Config{
			Cookies: httpHandler.CookieConfig{
				Domain:     cfg.HTTP.CookieDomain,
				AccessTTL:  cfg.AccessToken.Expiry.Duration(),
				RefreshTTL: cfg.RefreshToken.Expiry.Duration(),
			},
			CORSOrigins: cfg.HTTP.CORSOrigins,
		},
		logger,
	)

	health := handler.NewHealth(db, cfg.HealthInterval, logger)

	servers := []model.Server{
		httpServer.NewHTTPServer(routes.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port)),
		grpcServer.NewGRPCServer(grpcRouter.New(health, logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}

	sl := server.NewSecurityLayer(cfg.TLS.Enable, cfg.TLS.CertFileName, cfg.TLS.PrivateKeyFileName)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		health.Run(ctx)
	}()

	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
