package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/beesaferoot/yatube/internal/auth"
	"github.com/beesaferoot/yatube/internal/cache"
	"github.com/beesaferoot/yatube/internal/config"
	"github.com/beesaferoot/yatube/internal/database"
	"github.com/beesaferoot/yatube/internal/media"
	"github.com/beesaferoot/yatube/internal/posts"
	"github.com/beesaferoot/yatube/internal/store"
	"github.com/beesaferoot/yatube/internal/telemetry"
	"github.com/beesaferoot/yatube/internal/web"
	"github.com/beesaferoot/yatube/migration"
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")
			return serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "yatube", cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			errorLog.Printf("tracing shutdown: %v", err)
		}
	}()

	db, err := database.Open(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		return err
	}
	infoLog.Println("Database connected:", cfg.DatabaseURL)

	if migrate {
		applied, err := migration.NewMigrator(db).Up()
		for _, m := range applied {
			infoLog.Printf("Applied migration %s (%s)", m.Name, m.Version)
		}
		if err != nil {
			return err
		}
	}

	var pageCache cache.Cache = cache.NewMemory()
	if cfg.RedisURL != "" {
		redisCache, err := cache.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			errorLog.Printf("Redis unavailable, using in-memory page cache: %v", err)
		} else {
			defer redisCache.Close()
			pageCache = redisCache
			infoLog.Println("Page cache: redis")
		}
	}

	s := store.New(db)
	accounts := auth.NewService(s)
	app, err := web.New(web.Options{
		Posts:     posts.NewService(s, media.NewStorage(cfg.MediaRoot)),
		Accounts:  accounts,
		Sessions:  auth.NewSessions(accounts, auth.NewTokens(cfg.SecretKey, cfg.SessionTTL), cfg.SecureCookies),
		Cache:     pageCache,
		CacheTTL:  cfg.IndexCacheTTL,
		MediaRoot: cfg.MediaRoot,
		InfoLog:   infoLog,
		ErrorLog:  errorLog,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:     cfg.Addr,
		ErrorLog: errorLog,
		Handler:  app.Routes(),

		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		infoLog.Printf("Starting server on %s", cfg.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	infoLog.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
