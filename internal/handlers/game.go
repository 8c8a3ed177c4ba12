package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"minefield/internal/board"
	"minefield/internal/session"
)

type NewGameParams struct {
	Width  int `schema:"width,required"`
	Height int `schema:"height,required"`
}

type PosParams struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func (g *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	g.sendJSON(w, map[string]any{
		"status":   "ok",
		"sessions": g.games.Count(),
	})
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := g.dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		g.sendJSON(w, wrapError(err))
		return
	}

	b, err := board.New(params.Width, params.Height, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		g.sendJSON(w, wrapError(err))
		return
	}

	s := g.games.Create(b)
	g.log.WithFields(map[string]any{
		"session_id": s.ID,
		"width":      params.Width,
		"height":     params.Height,
	}).Info("new game")

	g.sendJSON(w, s)
}

func (g *GameHandler) fetchSession(w http.ResponseWriter, r *http.Request) *session.Session {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}
	s, err := g.games.Get(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}
	return s
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	if s := g.fetchSession(w, r); s != nil {
		g.sendJSON(w, s)
	}
}

func (g *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	var pos PosParams
	if err := g.dec.Decode(&pos, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		g.sendJSON(w, wrapError(err))
		return
	}
	s := g.fetchSession(w, r)
	if s == nil {
		return
	}
	// Out-of-bounds coordinates are a no-op inside the engine, not an
	// error; the client just gets the unchanged snapshot back
	s.Open(pos.X, pos.Y)
	g.sendJSON(w, s)
}

func (g *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	var pos PosParams
	if err := g.dec.Decode(&pos, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		g.sendJSON(w, wrapError(err))
		return
	}
	s := g.fetchSession(w, r)
	if s == nil {
		return
	}
	s.Flag(pos.X, pos.Y)
	g.sendJSON(w, s)
}

// Discard drops a session. Restart and back-to-menu both mean a fresh
// board, so the old one is simply forgotten.
func (g *GameHandler) Discard(w http.ResponseWriter, r *http.Request) {
	s := g.fetchSession(w, r)
	if s == nil {
		return
	}
	g.games.Delete(s.ID)
	g.sendJSON(w, s)
}

// Batch accepts newline-separated commands in the request body:
//
//	o x y // open the cell at x:y
//	f x y // flag the cell at x:y
//	g     // no-op, returns the snapshot
//
// Commands run in order under a single lock. Interpretation stops once
// the game is over. A malformed command stops the script and yields a
// 400 with the offending line number.
func (g *GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	s := g.fetchSession(w, r)
	if s == nil {
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.Error("unable to read batch body: ", err)
		return
	}

	var (
		badLine = -1
		cmdErr  error
	)
	s.Do(func(b *board.Board) {
		for i, c := range byPiece(strings.TrimSpace(string(body)), "\n") {
			if err := executeCommand(b, c); err != nil {
				badLine, cmdErr = i, err
				return
			}
			if b.State() != board.Continue {
				break
			}
		}
	})
	if cmdErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		g.sendJSON(w, map[string]any{
			"loc":   badLine,
			"error": cmdErr.Error(),
		})
		return
	}

	g.sendJSON(w, s)
}
