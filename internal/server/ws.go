package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"joffre/internal/engine"
)

// Hub owns the registry and turns websocket connections into session calls.
// One goroutine per connection; all game logic runs inside the session lock.
type Hub struct {
	Registry    Registry
	Recorder    Recorder
	Rules       engine.Rules
	TurnTimeout time.Duration

	upgrader websocket.Upgrader
}

func NewHub(reg Registry, rec Recorder, rules engine.Rules, turnTimeout time.Duration) *Hub {
	return &Hub{
		Registry:    reg,
		Recorder:    rec,
		Rules:       rules,
		TurnTimeout: turnTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ClientMessage is the single inbound envelope. Type selects which of the
// remaining fields matter.
type ClientMessage struct {
	Type     string     `json:"type"` // create_game | join_game | add_bot | action
	GameID   string     `json:"gameId,omitempty"`
	PlayerID string     `json:"playerId,omitempty"`
	Name     string     `json:"name,omitempty"`
	Seed     int64      `json:"seed,omitempty"`
	ActionID string     `json:"actionId,omitempty"`
	Action   *ActionDTO `json:"action,omitempty"`
}

type ServerMessage struct {
	Type     string     `json:"type"` // state | joined | error
	GameID   string     `json:"gameId,omitempty"`
	PlayerID string     `json:"playerId,omitempty"`
	Seat     *int       `json:"seat,omitempty"`
	State    *GameView  `json:"state,omitempty"`
	Events   []Event    `json:"events,omitempty"`
	Error    *ErrorView `json:"error,omitempty"`
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	defer conn.Close()

	var session *Session
	var playerID string

	defer func() {
		if session != nil {
			session.Disconnect(conn)
		}
	}()

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!strings.Contains(err.Error(), "use of closed") {
				log.Printf("ws read: %v", err)
			}
			return
		}

		switch msg.Type {
		case "create_game":
			if session != nil {
				session.SendError(conn, "illegal_action", "already in a game")
				continue
			}
			s, pid, seat, err := h.createGame(msg, conn)
			if err != nil {
				sendError(conn, errCode(err), err.Error())
				continue
			}
			session, playerID = s, pid
			session.SendJoined(conn, seat, playerID)

		case "join_game":
			if session != nil {
				session.SendError(conn, "illegal_action", "already in a game")
				continue
			}
			s, ok := h.Registry.Lookup(msg.GameID)
			if !ok {
				sendError(conn, "not_found", "no such game")
				continue
			}
			pid := msg.PlayerID
			if pid == "" {
				pid = uuid.NewString()
			}
			seat, err := s.Join(pid, msg.Name, conn)
			if err != nil {
				sendError(conn, errCode(err), err.Error())
				continue
			}
			session, playerID = s, pid
			session.SendJoined(conn, seat, playerID)

		case "add_bot":
			if session == nil {
				sendError(conn, "illegal_action", "join a game first")
				continue
			}
			name := msg.Name
			if name == "" {
				name = "bot"
			}
			if _, err := session.AddBot(uuid.NewString(), name); err != nil {
				session.SendError(conn, errCode(err), err.Error())
			}

		case "action":
			if session == nil {
				sendError(conn, "illegal_action", "join a game first")
				continue
			}
			session.Apply(conn, playerID, msg.ActionID, msg.Action)

		default:
			if session != nil {
				session.SendError(conn, "invalid_payload", "unknown message type")
				continue
			}
			sendError(conn, "invalid_payload", "unknown message type")
		}
	}
}

func (h *Hub) createGame(msg ClientMessage, conn *websocket.Conn) (*Session, string, int, error) {
	gameID := msg.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}
	seed := msg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := NewSession(gameID, h.Rules, seed, h.Recorder, h.TurnTimeout)
	if err := h.Registry.Insert(s); err != nil {
		s.Close()
		return nil, "", -1, err
	}
	pid := msg.PlayerID
	if pid == "" {
		pid = uuid.NewString()
	}
	seat, err := s.Join(pid, msg.Name, conn)
	if err != nil {
		h.Registry.Evict(gameID)
		return nil, "", -1, err
	}
	return s, pid, seat, nil
}

func errCode(err error) string {
	return string(engine.KindOf(err))
}
