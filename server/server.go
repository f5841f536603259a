package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"palace"
	"palace/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StatusRes is the body of the health endpoints
type StatusRes struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// GameServer is the session gateway: it owns the room store and the
// score ledger, maps inbound socket actions onto game operations and
// routes the resulting events back to connections.
type GameServer struct {
	store   palace.GameStore
	ledger  *palace.ScoreLedger
	handler http.Handler

	registry *sessionRegistry
}

// NewID constructs a session ID
func NewID() string {
	return uuid.NewV4().String()
}

// NewServer creates a new GameServer
func NewServer(store palace.GameStore, ledger *palace.ScoreLedger) *GameServer {
	s := &GameServer{
		store:    store,
		ledger:   ledger,
		registry: newSessionRegistry(),
	}

	router := http.NewServeMux()
	router.Handle("/", http.HandlerFunc(s.HandleStatus))
	router.Handle("/health", http.HandlerFunc(s.HandleStatus))
	router.Handle("/ping", http.HandlerFunc(s.HandlePing))
	router.Handle("/scores", http.HandlerFunc(s.HandleScores))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	s.handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(handlers.LoggingHandler(os.Stdout, router))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.handler.ServeHTTP(w, r)
}

// HandleStatus reports that the server is up
func (g *GameServer) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/health" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, StatusRes{
		Status:    "OK",
		Message:   "card game server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandlePing responds to liveness probes
func (g *GameServer) HandlePing(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

// HandleScores returns the current win counts
func (g *GameServer) HandleScores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, g.ledger.Scores())
}

// HandleWS upgrades the connection and starts a session
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	sess := newSession(g, rawConn)
	g.registry.add(sess)

	go sess.writePump()
	go sess.readPump()
}

// dispatch routes one inbound action to the target room's game. It
// runs on the session's read goroutine; the game's own mutex
// serialises actions arriving from both connections.
func (g *GameServer) dispatch(s *session, msg protocol.InboundMessage) {
	switch msg.Command {

	case protocol.SelectPlayer:
		g.registry.bindIdentity(s, msg.Name)
		scores := g.ledger.Scores()
		for _, sess := range g.registry.allSessions() {
			sess.enqueue(protocol.OutboundMessage{
				Command: protocol.ScoresUpdate,
				Scores:  scores,
			})
		}

	case protocol.JoinRoom:
		game := g.store.FindOrCreate(msg.RoomID)
		events, err := game.Join(s.identity())
		if err != nil {
			g.sendActionError(s, err)
			return
		}
		g.registry.joinRoom(s, msg.RoomID)
		g.deliver(msg.RoomID, events)

	case protocol.Ready:
		g.applyGameAction(s, msg.RoomID, func(game *palace.Game) ([]palace.Event, error) {
			return game.Ready(s.identity())
		})

	case protocol.ChooseFaceUp:
		g.applyGameAction(s, msg.RoomID, func(game *palace.Game) ([]palace.Event, error) {
			return game.ChooseFaceUp(s.identity(), msg.Cards)
		})

	case protocol.PlayCards:
		g.applyGameAction(s, msg.RoomID, func(game *palace.Game) ([]palace.Event, error) {
			return game.PlayCards(s.identity(), msg.Cards)
		})

	case protocol.PickUpPile:
		g.applyGameAction(s, msg.RoomID, func(game *palace.Game) ([]palace.Event, error) {
			return game.PickUpPile(s.identity())
		})

	case protocol.PlayFaceDown:
		g.applyGameAction(s, msg.RoomID, func(game *palace.Game) ([]palace.Event, error) {
			return game.PlayFaceDown(s.identity(), msg.Index)
		})

	case protocol.DisconnectAll:
		game, ok := g.store.Find(msg.RoomID)
		if !ok {
			return
		}
		g.deliver(msg.RoomID, game.Reset())
		for _, sess := range g.registry.roomSessions(msg.RoomID) {
			sess.close()
		}
		g.store.Remove(msg.RoomID)
	}
}

// applyGameAction runs a game operation and routes its outcome: events
// to the room, reportable failures to the actor only.
func (g *GameServer) applyGameAction(s *session, roomID string, action func(*palace.Game) ([]palace.Event, error)) {
	game, ok := g.store.Find(roomID)
	if !ok {
		return
	}

	events, err := action(game)
	if err != nil {
		g.sendActionError(s, err)
		return
	}

	// a finished match settles the score before anyone hears about it
	for i := range events {
		if events[i].Msg.Command == protocol.GameOver {
			g.ledger.RecordWin(events[i].Msg.Winner)
			events[i].Msg.Scores = g.ledger.Scores()
		}
	}

	g.deliver(roomID, events)
}

// sendActionError reports a failed action to the acting connection.
// Out-of-turn and wrong-phase actions stay silent so that an
// unauthorised sender learns nothing.
func (g *GameServer) sendActionError(s *session, err error) {
	switch {
	case errors.Is(err, palace.ErrInvalidMove):
		s.enqueue(protocol.OutboundMessage{Command: protocol.InvalidMove})

	case errors.Is(err, palace.ErrInvalidSelection):
		s.enqueue(protocol.OutboundMessage{
			Command: protocol.InvalidSelection,
			Message: err.Error(),
		})

	case errors.Is(err, palace.ErrRoomFull):
		s.enqueue(protocol.OutboundMessage{
			Command: protocol.RoomFull,
			Message: err.Error(),
		})
	}
}

// deliver fans events out: room-wide events to every session in the
// room, private events to whichever session currently holds the
// target identity
func (g *GameServer) deliver(roomID string, events []palace.Event) {
	for _, ev := range events {
		if ev.To == "" {
			for _, sess := range g.registry.roomSessions(roomID) {
				sess.enqueue(ev.Msg)
			}
			continue
		}
		if sess, ok := g.registry.findIdentity(ev.To); ok {
			sess.enqueue(ev.Msg)
		}
	}
}

// dropSession runs when a connection goes away: the player leaves
// their room and an empty room is deleted
func (g *GameServer) dropSession(s *session) {
	roomID := g.registry.remove(s)
	s.close()

	if roomID == "" {
		return
	}
	game, ok := g.store.Find(roomID)
	if !ok {
		return
	}

	events, remaining := game.Leave(s.identity())
	if remaining == 0 {
		g.store.Remove(roomID)
		return
	}
	g.deliver(roomID, events)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.Write(bytes)
}
