package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-bench/internal/config"
	"github.com/vancomm/minesweeper-bench/internal/middleware"
	"github.com/vancomm/minesweeper-bench/internal/mines"
	"github.com/vancomm/minesweeper-bench/internal/repository"
	"github.com/vancomm/minesweeper-bench/internal/sessions"
)

// RecordStore keeps finished games.
type RecordStore interface {
	CreateGameRecord(ctx context.Context, p repository.CreateGameRecordParams) (*repository.GameRecord, error)
}

type GameHandler struct {
	logger   *slog.Logger
	sessions *sessions.Registry
	records  RecordStore
	ws       *config.WebSocket
	maxArea  int
}

// NewGameHandler builds the game endpoints. records may be nil, in which case
// finished games are not written anywhere. Boards larger than maxArea squares
// are refused; a non-positive maxArea leaves only the engine's own limit.
func NewGameHandler(
	logger *slog.Logger,
	registry *sessions.Registry,
	records RecordStore,
	ws *config.WebSocket,
	maxArea int,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		sessions: registry,
		records:  records,
		ws:       ws,
		maxArea:  maxArea,
	}
}

type RevealResponse struct {
	Outcome mines.Outcome `json:"outcome"`
	sessions.Snapshot
}

var (
	ErrBadSessionId  = errors.New("invalid session id")
	ErrBoardTooLarge = errors.New("board too large")
)

func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, ErrBadSessionId)
		return nil, false
	}
	s, err := g.sessions.Get(id)
	if errors.Is(err, sessions.ErrNotFound) {
		sendError(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		internalError(w, g.logger, "unable to get session", err)
		return nil, false
	}
	return s, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[NewGameDTO](r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	if g.maxArea > 0 && dto.Width > 0 && dto.Height > 0 && dto.Width > g.maxArea/dto.Height {
		sendError(w, g.logger, http.StatusBadRequest,
			fmt.Errorf("%w: at most %d squares", ErrBoardTooLarge, g.maxArea))
		return
	}

	params := sessions.Params{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
	if claims, ok := middleware.Claims(r.Context()); ok {
		params.PlayerId = &claims.PlayerId
	}

	s, err := g.sessions.Create(params)
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	g.logger.Debug("created session",
		slog.String("id", s.Id.String()),
		slog.Int("width", dto.Width),
		slog.Int("height", dto.Height),
		slog.Int("mineCount", dto.MineCount),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	SendJSONOrLog(w, g.logger, s.Snapshot())
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	SendJSONOrLog(w, g.logger, s.Snapshot())
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pos, err := decode[PositionDTO](r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	SendJSONOrLog(w, g.logger, g.reveal(r.Context(), s, pos.X, pos.Y))
}

func (g GameHandler) reveal(ctx context.Context, s *sessions.Session, x, y int) RevealResponse {
	o, snap, finished := s.Reveal(x, y)
	if finished {
		g.storeRecord(ctx, s, snap)
	}
	return RevealResponse{Outcome: o, Snapshot: snap}
}

func (g GameHandler) storeRecord(ctx context.Context, s *sessions.Session, snap sessions.Snapshot) {
	if g.records == nil || snap.EndedAt == nil {
		return
	}
	_, err := g.records.CreateGameRecord(ctx, repository.CreateGameRecordParams{
		GameRecordId: s.Id,
		PlayerId:     s.PlayerId,
		Width:        snap.Width,
		Height:       snap.Height,
		MineCount:    snap.MineCount,
		Won:          snap.Won,
		Moves:        snap.Moves,
		StartedAt:    time.UnixMilli(snap.StartedAt).UTC(),
		EndedAt:      time.UnixMilli(*snap.EndedAt).UTC(),
	})
	if err != nil {
		g.logger.Error("unable to store game record",
			slog.String("id", s.Id.String()), slog.Any("error", err))
	}
}
