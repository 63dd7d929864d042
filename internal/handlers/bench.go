package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-bench/internal/mines"
	"github.com/vancomm/minesweeper-bench/internal/policy"
	"github.com/vancomm/minesweeper-bench/internal/repository"
	"github.com/vancomm/minesweeper-bench/internal/stats"
)

type BenchStore interface {
	CreateBenchRun(ctx context.Context, res stats.Result, seed uint64) (*repository.BenchRun, error)
	ListBenchRuns(ctx context.Context, filter repository.BenchRunFilter) ([]repository.BenchRun, error)
}

type BenchHandler struct {
	logger  *slog.Logger
	runs    BenchStore
	limit   int
	workers int
}

// NewBenchHandler serves win-rate runs of at most limit games each. runs may
// be nil, which disables storing and listing.
func NewBenchHandler(logger *slog.Logger, runs BenchStore, limit, workers int) *BenchHandler {
	return &BenchHandler{
		logger:  logger,
		runs:    runs,
		limit:   limit,
		workers: max(1, workers),
	}
}

var (
	ErrUnknownPreset  = errors.New("unknown preset")
	ErrTooManyGames   = errors.New("too many iterations")
	ErrNoBenchStorage = errors.New("bench storage is not configured")
)

type BenchResponse struct {
	Result stats.Result         `json:"result"`
	Rate   float64              `json:"rate"`
	Seed   uint64               `json:"seed"`
	Run    *repository.BenchRun `json:"run,omitempty"`
}

func (b BenchHandler) Run(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[RunBenchDTO](r.URL.Query())
	if err != nil {
		sendError(w, b.logger, http.StatusBadRequest, err)
		return
	}

	preset, ok := stats.PresetByName(dto.Preset)
	if !ok {
		sendError(w, b.logger, http.StatusBadRequest, fmt.Errorf("%w %q", ErrUnknownPreset, dto.Preset))
		return
	}
	p, err := policy.ByName(dto.Policy)
	if err != nil {
		sendError(w, b.logger, http.StatusBadRequest, err)
		return
	}
	if dto.Iterations <= 0 {
		sendError(w, b.logger, http.StatusBadRequest, stats.ErrNoIterations)
		return
	}
	if b.limit > 0 && dto.Iterations > b.limit {
		sendError(w, b.logger, http.StatusBadRequest, fmt.Errorf("%w: at most %d", ErrTooManyGames, b.limit))
		return
	}

	seed := mines.NewRand().Uint64()
	if dto.Seed != nil {
		seed = *dto.Seed
	}
	workers := b.workers
	if dto.Workers > 0 {
		workers = min(dto.Workers, b.workers)
	}

	res, err := stats.Run(r.Context(), stats.Options{
		Preset:     preset,
		Policy:     p,
		Iterations: dto.Iterations,
		Workers:    workers,
		Seed:       seed,
		Logger:     b.logger,
	})
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		internalError(w, b.logger, "unable to run bench", err)
		return
	}

	resp := BenchResponse{Result: res, Rate: res.Rate(), Seed: seed}
	if b.runs != nil {
		run, err := b.runs.CreateBenchRun(r.Context(), res, seed)
		if err != nil {
			internalError(w, b.logger, "unable to store bench run", err)
			return
		}
		resp.Run = run
	}
	SendJSONOrLog(w, b.logger, resp)
}

func (b BenchHandler) List(w http.ResponseWriter, r *http.Request) {
	if b.runs == nil {
		sendError(w, b.logger, http.StatusNotFound, ErrNoBenchStorage)
		return
	}
	dto, err := decode[BenchFilterDTO](r.URL.Query())
	if err != nil {
		sendError(w, b.logger, http.StatusBadRequest, err)
		return
	}
	runs, err := b.runs.ListBenchRuns(r.Context(), repository.BenchRunFilter{
		Preset: dto.Preset,
		Policy: dto.Policy,
		Limit:  dto.Limit,
	})
	if err != nil {
		internalError(w, b.logger, "failed to fetch bench runs", err)
		return
	}
	if runs == nil {
		runs = []repository.BenchRun{}
	}
	SendJSONOrLog(w, b.logger, runs)
}

// Presets lists the named presets and policies a run accepts.
func (b BenchHandler) Presets(w http.ResponseWriter, r *http.Request) {
	SendJSONOrLog(w, b.logger, map[string]any{
		"presets":  stats.Presets(),
		"policies": policy.Names(),
	})
}
