package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-bench/internal/sessions"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgCount    = errors.New("invalid number of arguments")
)

type command struct {
	name string
	x, y int
}

var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

// parseCommand reads one line: "g" to fetch the game or "o x y" to reveal.
func parseCommand(line string) (command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{}, ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return command{}, ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return command{}, ErrBadArgCount
	}
	c := command{name: parts[0]}
	if nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return command{}, err
		}
		c.x, c.y = x, y
	}
	return c, nil
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		for line := range strings.SplitSeq(strings.TrimSpace(string(message)), "\n") {
			g.logger.Debug("ws command", slog.String("id", s.Id.String()), slog.String("line", line))
			if err := c.WriteJSON(g.runCommand(r, s, line)); err != nil {
				g.logger.Error("unable to write json", slog.Any("error", err))
				return
			}
		}
	}
}

func (g GameHandler) runCommand(r *http.Request, s *sessions.Session, line string) any {
	cmd, err := parseCommand(line)
	if err != nil {
		return wrapError(err)
	}
	switch cmd.name {
	case "o":
		return g.reveal(r.Context(), s, cmd.x, cmd.y)
	default:
		return s.Snapshot()
	}
}
