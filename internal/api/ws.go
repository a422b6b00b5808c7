package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/constants"
	"github.com/mingu600/tapu-simu/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The engine has no cross-origin auth surface; the feed is read-only
	// state already served over GET.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StateHub fans battle state updates out to websocket subscribers, grouped
// by session UUID.
type StateHub struct {
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]struct{}
}

func NewStateHub() *StateHub {
	return &StateHub{subs: make(map[string]map[*websocket.Conn]struct{})}
}

func (hub *StateHub) add(sessionUUID string, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if hub.subs[sessionUUID] == nil {
		hub.subs[sessionUUID] = make(map[*websocket.Conn]struct{})
	}
	hub.subs[sessionUUID][conn] = struct{}{}
}

func (hub *StateHub) remove(sessionUUID string, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if conns := hub.subs[sessionUUID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(hub.subs, sessionUUID)
		}
	}
	conn.Close()
}

// BroadcastState pushes the new state to every subscriber of the session.
// Writes happen under the hub lock: gorilla connections allow only one
// concurrent writer.
func (hub *StateHub) BroadcastState(sessionUUID string, sess *battle.Session, st *battle.State) {
	payload := newSessionResponse(sess, st)
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for conn := range hub.subs[sessionUUID] {
		if err := conn.WriteJSON(payload); err != nil {
			delete(hub.subs[sessionUUID], conn)
			conn.Close()
		}
	}
}

// WatchBattle upgrades the request to a websocket and streams state updates
// for the session. The current state is sent immediately on connect.
func (h *BattleHandler) WatchBattle(c *gin.Context) {
	sessionUUID, ok := sessionIDParam(c)
	if !ok {
		return
	}
	sess, st, err := h.svc.GetSession(sessionUUID)
	if err != nil {
		h.respondError(c, err, constants.ErrFailedPersistSession)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldSessionID: sessionUUID})
		return
	}
	// Send the current state before registering so the initial write cannot
	// race a broadcast on the same connection.
	if err := conn.WriteJSON(newSessionResponse(sess, st)); err != nil {
		conn.Close()
		return
	}
	h.hub.add(sessionUUID, conn)

	// Read loop: the feed is one-way, but reading is what detects the close
	// handshake and connection drops.
	go func() {
		defer h.hub.remove(sessionUUID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
