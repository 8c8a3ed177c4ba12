package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"minefield/internal/board"
)

// Connect upgrades the request and plays the session over a WebSocket:
// each text frame carries a newline-separated command script and is
// answered with the session snapshot.
func (g *GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	s := g.fetchSession(w, r)
	if s == nil {
		return
	}
	c, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		g.log.Debug("\t> ", text)

		var cmdErr error
		s.Do(func(b *board.Board) {
			for _, c := range byPiece(text, "\n") {
				if err := executeCommand(b, c); err != nil {
					cmdErr = err
					return
				}
				if b.State() != board.Continue {
					break
				}
			}
		})
		if cmdErr != nil {
			g.log.Error("command: ", cmdErr)
			return
		}

		if err := c.WriteJSON(s); err != nil {
			g.log.Error("write: ", err)
			break
		}
		g.log.Debug("\t< <session data>")
	}
}
