package handlers

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"minefield/internal/session"
)

// GameHandler serves the board engine over HTTP and WebSocket. It owns
// the session registry and the randomness source used for mine layouts.
type GameHandler struct {
	log      *logrus.Logger
	games    *session.Registry
	rnd      *rand.Rand
	dec      *schema.Decoder
	upgrader websocket.Upgrader
}

func NewGameHandler(
	log *logrus.Logger,
	games *session.Registry,
	rnd *rand.Rand,
) *GameHandler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return &GameHandler{
		log:   log,
		games: games,
		rnd:   rnd,
		dec:   dec,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (g *GameHandler) sendJSON(w http.ResponseWriter, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithField("response", v).Error("unable to send response: ", err)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(payload); err != nil {
		g.log.Error("unable to send response: ", err)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
