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

	"github.com/micropost/micropost-go/internal/config"
	"github.com/micropost/micropost-go/internal/handler"
	"github.com/micropost/micropost-go/internal/middleware"
	"github.com/micropost/micropost-go/internal/repository"
	"github.com/micropost/micropost-go/internal/service"
	"github.com/micropost/micropost-go/internal/session"
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
		slog.Error("running migrations failed", "error", err)
		os.Exit(1)
	}

	sessions := session.NewMemoryStore(5 * time.Minute)
	defer sessions.Close()

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handler.NewAuthHandler(authService, sessions, cfg.SessionTTL)

	postRepo := repository.NewPostRepository(db)
	postService := service.NewPostService(postRepo)
	postHandler := handler.NewPostHandler(postService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/", handler.ServePage("home.html"))
	r.Get("/register", handler.ServePage("register.html"))
	r.Get("/login", handler.ServePage("login.html"))
	r.Get("/logout", authHandler.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthOrRedirect(sessions, cfg.JWTSecret))
		r.Get("/index", handler.ServePage("index.html"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessions, cfg.JWTSecret))
		r.Post("/post", postHandler.HandleCreate)
		r.Get("/posts", postHandler.HandleList)
		r.Put("/posts/{postID}", postHandler.HandleUpdate)
		r.Delete("/posts/{postID}", postHandler.HandleDelete)
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
