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

	"github.com/akarasev/userhub/internal/api/http/authctx"
	"github.com/akarasev/userhub/internal/api/http/router"
	"github.com/akarasev/userhub/internal/auth"
	"github.com/akarasev/userhub/internal/config"
	"github.com/akarasev/userhub/internal/logger"
	"github.com/akarasev/userhub/internal/model"
	"github.com/akarasev/userhub/internal/repository/file"
	"github.com/akarasev/userhub/internal/repository/postgres"
	"github.com/akarasev/userhub/internal/server"
	"github.com/akarasev/userhub/internal/service"
	"github.com/akarasev/userhub/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	userStore, cleanup, err := newUserStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize user store", "error", err)
	}
	defer cleanup()

	hasher := auth.NewBcryptHasher(0)
	tokenManager := token.NewJWT(cfg.JWT.Secret)
	authService := service.NewAuth(userStore, hasher, tokenManager, logger)
	ctxManager := authctx.NewManager()

	r := router.New(authService, authService, ctxManager, logger)
	httpServer := server.NewHTTPServer(r.Handler(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newUserStore(ctx context.Context, cfg *config.Config) (model.UserStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewUserRepository(db), func() { _ = db.Close() }, nil
	default:
		return file.NewStore(cfg.Storage.FilePath), func() {}, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
