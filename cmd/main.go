// Package main wires the HTTP server for the team management service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/AleksGin/business-manager-ci/config"
	"github.com/AleksGin/business-manager-ci/internal/invites"
	"github.com/AleksGin/business-manager-ci/internal/permissions"
	"github.com/AleksGin/business-manager-ci/internal/repository"
	"github.com/AleksGin/business-manager-ci/internal/transport/http/middleware"
	handlers_fiber "github.com/AleksGin/business-manager-ci/internal/transport/http/server/handlers-fiber"
	"github.com/AleksGin/business-manager-ci/internal/usecase"
	"github.com/AleksGin/business-manager-ci/pkg/clock"
	"github.com/AleksGin/business-manager-ci/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	repo, err := repository.New(ctx, "postgres", log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	inviteStore := invites.NewRedisStore(cfg.Redis, log)
	if err := inviteStore.Ping(ctx); err != nil {
		log.Errorw("invite store start error", "error", err)
		return
	}
	defer func() {
		_ = inviteStore.Close()
	}()

	uc := usecase.New(
		log,
		ctx,
		repo,
		permissions.NewValidator(),
		inviteStore,
		clock.System{},
		cfg.HTTP.RequestTimeout,
		cfg.Invites.TTL,
	)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	h := handlers_fiber.NewHandler(log, uc)
	h.RegisterRoutes(serv)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
