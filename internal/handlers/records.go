package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-bench/internal/repository"
)

type RecordLister interface {
	GetRecords(ctx context.Context, filter repository.RecordFilter) ([]repository.Record, error)
}

type Records struct {
	logger  *slog.Logger
	records RecordLister
}

func NewRecords(logger *slog.Logger, records RecordLister) *Records {
	return &Records{logger: logger, records: records}
}

var ErrPartialParams = errors.New("width, height and mine_count must be given together")

func (h Records) List(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[RecordFilterDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	filter := repository.RecordFilter{Username: dto.Username, Limit: dto.Limit}
	switch {
	case dto.Width != nil && dto.Height != nil && dto.MineCount != nil:
		filter.Params = &repository.BoardParams{
			Width:     *dto.Width,
			Height:    *dto.Height,
			MineCount: *dto.MineCount,
		}
	case dto.Width != nil || dto.Height != nil || dto.MineCount != nil:
		sendError(w, h.logger, http.StatusBadRequest, ErrPartialParams)
		return
	}

	records, err := h.records.GetRecords(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to fetch records", slog.Any("error", err), slog.Any("filter", filter))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []repository.Record{}
	}
	SendJSONOrLog(w, h.logger, records)
}
