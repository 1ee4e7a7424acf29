package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"joffre/internal/bots"
	"joffre/internal/engine"
)

// Recorder receives fire-and-forget persistence notifications after a
// transition has completed. The engine never reads any of it back
// mid-round, so a failing store cannot stall play.
type Recorder interface {
	SaveSnapshot(gameID, phase string, state []byte)
	RecordRound(gameID string, result engine.RoundResult)
	RecordResult(gameID string, state engine.GameState)
}

type nopRecorder struct{}

func (nopRecorder) SaveSnapshot(string, string, []byte)    {}
func (nopRecorder) RecordRound(string, engine.RoundResult) {}
func (nopRecorder) RecordResult(string, engine.GameState)  {}

// Session owns one game's state. All actions are serialized under a single
// mutex in arrival order; the scheduler callback and bot moves go through
// the same lock, so no two transitions ever interleave.
type Session struct {
	mu        sync.Mutex
	id        string
	state     engine.GameState
	actionIds map[string]bool
	conns     map[int]*websocket.Conn
	bots      map[int]bots.Bot
	sched     *scheduler
	rec       Recorder
	turnStart time.Time
	closed    bool
}

func NewSession(id string, rules engine.Rules, seed int64, rec Recorder, turnTimeout time.Duration) *Session {
	if rec == nil {
		rec = nopRecorder{}
	}
	s := &Session{
		id:        id,
		state:     engine.NewGame(rules, seed),
		actionIds: map[string]bool{},
		conns:     map[int]*websocket.Conn{},
		bots:      map[int]bots.Bot{},
		rec:       rec,
	}
	s.sched = newScheduler(turnTimeout, s.expireSeat)
	return s
}

func (s *Session) ID() string { return s.id }

// State returns a deep copy for read-only consumers (statistics,
// achievements after game over).
func (s *Session) State() engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.sched.Stop()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.conns = map[int]*websocket.Conn{}
}

// Join seats a new player or re-attaches a returning one. Reconnection only
// flips the connection status and re-arms the timer; game data is untouched.
func (s *Session) Join(playerID, name string, conn *websocket.Conn) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return -1, &engine.Reject{Kind: engine.IllegalAction, Msg: "session closed"}
	}

	if seat := s.state.SeatOf(playerID); seat >= 0 {
		s.conns[seat] = conn
		s.state.Players[seat].Connected = true
		if cur, ok := engine.CurrentPlayer(s.state); ok && cur == seat {
			if _, isBot := s.bots[seat]; !isBot {
				s.turnStart = time.Now()
				s.sched.Arm(seat)
			}
		}
		s.broadcastLocked([]Event{{Type: "player_connected", Data: EventPayload{Seat: seat}}})
		return seat, nil
	}

	seat := -1
	for i := range s.state.Players {
		if !s.state.Players[i].Seated {
			seat = i
			break
		}
	}
	if seat == -1 {
		return -1, &engine.Reject{Kind: engine.IllegalAction, Msg: "game is full"}
	}
	if err := s.state.Seat(seat, playerID, name, false); err != nil {
		return -1, err
	}
	s.conns[seat] = conn
	s.broadcastLocked([]Event{{Type: "player_joined", Data: EventPayload{Seat: seat}}})
	return seat, nil
}

// AddBot fills the first free seat with a bot player.
func (s *Session) AddBot(id, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat := -1
	for i := range s.state.Players {
		if !s.state.Players[i].Seated {
			seat = i
			break
		}
	}
	if seat == -1 {
		return -1, &engine.Reject{Kind: engine.IllegalAction, Msg: "game is full"}
	}
	if err := s.state.Seat(seat, id, name, true); err != nil {
		return -1, err
	}
	s.bots[seat] = bots.NewNormal(s.state.Seed + int64(seat) + 1)
	s.broadcastLocked([]Event{{Type: "player_joined", Data: EventPayload{Seat: seat}}})
	return seat, nil
}

// Disconnect marks the seat offline. The armed deadline keeps running so a
// vanished player cannot stall the round; expiry injects a default action.
func (s *Session) Disconnect(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for seat, c := range s.conns {
		if c == conn {
			delete(s.conns, seat)
			s.state.Players[seat].Connected = false
			s.broadcastLocked([]Event{{Type: "player_disconnected", Data: EventPayload{Seat: seat}}})
			return
		}
	}
}

// Apply runs one player action through validation and the transition table.
// Rejections go only to the acting connection and change nothing.
func (s *Session) Apply(conn *websocket.Conn, playerID, actionId string, dto *ActionDTO) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Corrupted {
		sendError(conn, string(engine.InvariantViolation), "session corrupted")
		return
	}
	seat := s.state.SeatOf(playerID)
	if seat < 0 {
		sendError(conn, string(engine.IllegalAction), "not seated in this game")
		return
	}
	if actionId != "" && s.actionIds[actionId] {
		// Duplicate delivery: resend the current state, apply nothing.
		s.sendStateTo(conn, seat, nil)
		return
	}
	action, err := dto.ToEngine()
	if err != nil {
		sendError(conn, string(engine.InvalidPayload), err.Error())
		return
	}

	prev := s.state
	if err := engine.ApplyAction(&s.state, seat, action); err != nil {
		if engine.KindOf(err) == engine.InvariantViolation {
			log.Printf("session %s corrupted: %v", s.id, err)
			s.broadcastLocked([]Event{{Type: "session_corrupted", Data: EventPayload{}}})
			s.sched.Stop()
			return
		}
		sendError(conn, string(engine.KindOf(err)), err.Error())
		return
	}
	if actionId != "" {
		s.actionIds[actionId] = true
	}
	if !s.turnStart.IsZero() && prev.TurnSeat == seat {
		s.state.Stats.RecordAct(seat, time.Since(s.turnStart))
	}
	s.sched.Cancel()
	s.commitLocked(prev, seat, action, nil)
	s.advanceLocked()
}

// expireSeat is the scheduler callback: the armed deadline passed without a
// legal action, so inject the default one (auto-skip in betting, first
// legal card in playing). A stale expiry for a seat no longer on turn is
// dropped silently.
func (s *Session) expireSeat(seat int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state.Corrupted {
		return
	}
	cur, ok := engine.CurrentPlayer(s.state)
	if !ok || cur != seat {
		return
	}
	legal := engine.LegalActions(s.state, seat)
	action, found := fallbackAction(s.state, seat, legal)
	if !found {
		log.Printf("session %s: no fallback action for seat %d", s.id, seat)
		return
	}
	prev := s.state
	if err := engine.ApplyAction(&s.state, seat, action); err != nil {
		log.Printf("session %s: fallback action failed: %v", s.id, err)
		return
	}
	s.commitLocked(prev, seat, action, []Event{{Type: "turn_timeout", Data: EventPayload{Seat: seat}}})
	s.advanceLocked()
}

// fallbackAction picks the default legal action injected on timeout.
func fallbackAction(g engine.GameState, seat int, legal []engine.Action) (engine.Action, bool) {
	if len(legal) == 0 {
		return engine.Action{}, false
	}
	if g.Phase == engine.PhaseBetting {
		for _, a := range legal {
			if a.Type == engine.ActionSkipBet {
				return a, true
			}
		}
		// Dealer cannot skip as the only bettor: lowest legal bet instead.
	}
	return legal[0], true
}

// advanceLocked plays queued bot turns inline (bots never arm a timer) and
// then arms the deadline for the next human seat, if any.
func (s *Session) advanceLocked() {
	for {
		if s.state.Phase == engine.PhaseGameOver || s.state.Corrupted {
			s.sched.Cancel()
			return
		}
		seat, ok := engine.CurrentPlayer(s.state)
		if !ok {
			s.sched.Cancel()
			return
		}
		bot, isBot := s.bots[seat]
		if !isBot {
			s.turnStart = time.Now()
			s.sched.Arm(seat)
			return
		}
		prev := s.state
		action := bot.ChooseAction(s.state, seat)
		if err := engine.ApplyAction(&s.state, seat, action); err != nil {
			log.Printf("session %s: bot action error: %v", s.id, err)
			return
		}
		s.commitLocked(prev, seat, action, nil)
	}
}

// commitLocked broadcasts the transition and hands the outcome to the
// persistence collaborator: one history record per scored round, a snapshot
// on every phase change, the final state once on game over.
func (s *Session) commitLocked(prev engine.GameState, seat int, action engine.Action, extra []Event) {
	events := append(buildEvents(prev, s.state, seat, action), extra...)
	s.broadcastLocked(events)

	for i := len(prev.History); i < len(s.state.History); i++ {
		s.rec.RecordRound(s.id, s.state.History[i])
	}
	if prev.Phase != s.state.Phase || prev.Round != s.state.Round {
		if data, err := json.Marshal(s.state); err == nil {
			s.rec.SaveSnapshot(s.id, s.state.Phase.String(), data)
		}
	}
	if s.state.Phase == engine.PhaseGameOver && prev.Phase != engine.PhaseGameOver {
		s.rec.RecordResult(s.id, s.state.Clone())
	}
}

func (s *Session) broadcastLocked(events []Event) {
	for seat, conn := range s.conns {
		s.sendStateTo(conn, seat, events)
	}
}

func (s *Session) sendStateTo(conn *websocket.Conn, seat int, events []Event) {
	if conn == nil {
		return
	}
	view := BuildGameView(s.state, seat, s.id)
	msg := ServerMessage{
		Type:   "state",
		State:  &view,
		Events: events,
	}
	_ = conn.WriteJSON(msg)
}

// SendJoined reports a seat assignment to one connection. It takes the
// session lock so the frame cannot interleave with a broadcast writing to
// the same connection; gorilla allows only one writer per conn.
func (s *Session) SendJoined(conn *websocket.Conn, seat int, playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conn == nil {
		return
	}
	view := BuildGameView(s.state, seat, s.id)
	msg := ServerMessage{
		Type:     "joined",
		GameID:   s.id,
		PlayerID: playerID,
		Seat:     &seat,
		State:    &view,
	}
	_ = conn.WriteJSON(msg)
}

// SendError delivers a rejection to one registered connection under the
// session lock, for the same single-writer reason as SendJoined.
func (s *Session) SendError(conn *websocket.Conn, code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sendError(conn, code, message)
}

func sendError(conn *websocket.Conn, code, message string) {
	if conn == nil {
		return
	}
	msg := ServerMessage{
		Type:  "error",
		Error: &ErrorView{Code: code, Message: message},
	}
	_ = conn.WriteJSON(msg)
}
