package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-bench/internal/config"
	"github.com/vancomm/minesweeper-bench/internal/database"
	"github.com/vancomm/minesweeper-bench/internal/middleware"
	"github.com/vancomm/minesweeper-bench/internal/mines"
	"github.com/vancomm/minesweeper-bench/internal/sessions"
)

type App struct {
	logger     *slog.Logger
	config     *config.App
	router     *http.ServeMux
	db         *pgxpool.Pool
	cookies    *config.Cookies
	jwt        *config.JWT
	ws         *config.WebSocket
	sessions   *sessions.Registry
	migrations fs.FS
}

func New(logger *slog.Logger, cfg *config.App, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		config:     cfg,
		router:     http.NewServeMux(),
		sessions:   sessions.NewRegistry(mines.NewRand()),
		migrations: migrations,
	}
}

func (a *App) Start(ctx context.Context) error {
	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()
	a.db = db

	if a.jwt, err = config.NewJWT(); err != nil {
		return err
	}
	if a.cookies, err = config.NewCookies(a.jwt); err != nil {
		return err
	}
	if a.ws, err = config.NewWebSocket(); err != nil {
		return err
	}

	a.loadRoutes(runtime.GOMAXPROCS(0))

	server := &http.Server{
		Addr:         a.config.Addr(),
		Handler:      a.handler(),
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Minute * 2,
		IdleTimeout:  time.Second * 60,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		a.sweep(gCtx)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}

func (a *App) handler() http.Handler {
	var h http.Handler = a.router
	if a.config.BasePath != "" {
		h = http.StripPrefix(a.config.BasePath, h)
	}
	return middleware.Wrap(
		h,
		middleware.Auth(a.logger, a.cookies),
		middleware.Cors(a.config.CorsOrigins),
		middleware.Recover(a.logger),
		middleware.Logging(a.logger),
	)
}

// sweep evicts games left idle longer than the session ttl until ctx is done.
func (a *App) sweep(ctx context.Context) {
	ttl := a.config.SessionTTL
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(max(ttl/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := a.sessions.Sweep(now.Add(-ttl)); n > 0 {
				a.logger.Debug("swept idle sessions", slog.Int("count", n), slog.Int("live", a.sessions.Len()))
			}
		}
	}
}
