package server

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"palace/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	sendBufferSize = 16
)

// session is one websocket connection. The session ID is transport
// scoped; the player's stable identity is the name they select, so
// private payloads follow the identity to a reconnected session.
type session struct {
	id     string
	server *GameServer
	conn   *websocket.Conn
	send   chan protocol.OutboundMessage

	mu     sync.Mutex
	name   string
	closed bool
}

func newSession(server *GameServer, conn *websocket.Conn) *session {
	return &session{
		id:     NewID(),
		server: server,
		conn:   conn,
		send:   make(chan protocol.OutboundMessage, sendBufferSize),
	}
}

// identity returns the selected player name, or the session ID until
// a name is chosen
func (s *session) identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.name != "" {
		return s.name
	}
	return s.id
}

func (s *session) setName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// enqueue hands a message to the write pump. A session that cannot
// keep up loses messages rather than stalling the game, and a closed
// session drops them outright: a fan-out can still hold a snapshot of
// this session after disconnection.
func (s *session) enqueue(msg protocol.OutboundMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.send <- msg:
	default:
		log.Printf("session %s: send buffer full, dropping %s", s.id, msg.Command)
	}
}

// close marks the session closed and closes the send channel. The
// closed flag and the channel close share the mutex with enqueue, so
// no in-flight enqueue can hit the closed channel.
func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

func (s *session) readPump() {
	defer s.server.dropSession(s)

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg protocol.InboundMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: %v", s.id, err)
			}
			return
		}
		s.server.dispatch(s, msg)
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sessionRegistry tracks which sessions are in which room and which
// session currently speaks for each identity
type sessionRegistry struct {
	mu         sync.Mutex
	rooms      map[string]map[*session]struct{}
	identities map[string]*session
	sessions   map[*session]string // session -> roomID
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		rooms:      map[string]map[*session]struct{}{},
		identities: map[string]*session{},
		sessions:   map[*session]string{},
	}
}

func (r *sessionRegistry) add(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.identities[s.id] = s
	r.sessions[s] = ""
}

// bindIdentity points an identity at a session. A reconnecting player
// selects the same name and takes over their private payloads.
func (r *sessionRegistry) bindIdentity(s *session, name string) {
	if name == "" {
		return
	}
	s.setName(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities[name] = s
}

func (r *sessionRegistry) joinRoom(s *session, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[roomID] == nil {
		r.rooms[roomID] = map[*session]struct{}{}
	}
	r.rooms[roomID][s] = struct{}{}
	r.sessions[s] = roomID
}

func (r *sessionRegistry) roomSessions(roomID string) []*session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := []*session{}
	for s := range r.rooms[roomID] {
		sessions = append(sessions, s)
	}
	return sessions
}

func (r *sessionRegistry) allSessions() []*session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := []*session{}
	for s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

func (r *sessionRegistry) findIdentity(identity string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.identities[identity]
	return s, ok
}

// remove forgets a session and returns the room it was in
func (r *sessionRegistry) remove(s *session) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID := r.sessions[s]
	delete(r.sessions, s)
	if roomID != "" {
		delete(r.rooms[roomID], s)
		if len(r.rooms[roomID]) == 0 {
			delete(r.rooms, roomID)
		}
	}
	if r.identities[s.id] == s {
		delete(r.identities, s.id)
	}
	if name := s.identity(); r.identities[name] == s {
		delete(r.identities, name)
	}
	return roomID
}
