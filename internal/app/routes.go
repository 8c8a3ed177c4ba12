package app

import (
	"net/http"

	"minefield/internal/handlers"
	"minefield/internal/middleware"
)

func (a *App) routes() http.Handler {
	game := handlers.NewGameHandler(a.log, a.games, a.rnd)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/status", game.Status)

	mux.HandleFunc("POST /v1/game", game.NewGame)
	mux.HandleFunc("GET /v1/game/{id}", game.Fetch)
	mux.HandleFunc("POST /v1/game/{id}/open", game.Open)
	mux.HandleFunc("POST /v1/game/{id}/flag", game.Flag)
	mux.HandleFunc("POST /v1/game/{id}/batch", game.Batch)
	mux.HandleFunc("DELETE /v1/game/{id}", game.Discard)

	mux.HandleFunc("/v1/game/{id}/connect", game.Connect)

	return middleware.Wrap(mux,
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}
