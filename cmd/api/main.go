package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/aiteam4i/AITeamInterns/internal/agent"
	"github.com/aiteam4i/AITeamInterns/internal/config"
	"github.com/aiteam4i/AITeamInterns/internal/handler"
	"github.com/aiteam4i/AITeamInterns/internal/middleware"
	"github.com/aiteam4i/AITeamInterns/internal/repository"
	"github.com/aiteam4i/AITeamInterns/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(context.Background(), db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	authHandler := handler.NewAuthHandler(authService)

	nlAgent := agent.NewScriptRunner(cfg.AgentCommand, cfg.AgentScript, cfg.AgentTimeout)
	queryService := service.NewQueryService(userRepo, nlAgent)
	queryHandler := handler.NewQueryHandler(queryService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/api/health", handler.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/signup", authHandler.HandleSignup)
		r.Post("/api/auth/signin", authHandler.HandleSignin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/auth/profile", authHandler.HandleProfile)
		r.Post("/api/query", queryHandler.HandleQuery)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
