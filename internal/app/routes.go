package app

import (
	"net/http"

	"github.com/vancomm/minesweeper-bench/internal/handlers"
	"github.com/vancomm/minesweeper-bench/internal/repository"
)

func (a *App) loadRoutes(workers int) {
	repo := repository.New(a.db)

	game := handlers.NewGameHandler(a.logger, a.sessions, repo, a.ws, a.config.MaxArea)
	auth := handlers.NewAuth(a.logger, repo, a.cookies, a.jwt)
	bench := handlers.NewBenchHandler(a.logger, repo, a.config.BenchLimit, workers)
	records := handlers.NewRecords(a.logger, repo)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("GET /v1/game/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("POST /v1/register", auth.Register)
	a.router.HandleFunc("POST /v1/login", auth.Login)
	a.router.HandleFunc("POST /v1/logout", auth.Logout)
	a.router.HandleFunc("GET /v1/status", auth.Status)

	a.router.HandleFunc("POST /v1/bench", bench.Run)
	a.router.HandleFunc("GET /v1/bench", bench.List)
	a.router.HandleFunc("GET /v1/bench/presets", bench.Presets)

	a.router.HandleFunc("GET /v1/records", records.List)

	a.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
