package palace

import (
	"sync"

	"palace/deck"
	"palace/protocol"
)

// Stage represents the main stages of a match
type Stage int

const (
	waitingForPlayers Stage = iota
	preparing
	active
	finished
)

const (
	maxPlayers      = 2
	handSize        = 6
	faceDownSize    = 3
	faceUpSize      = 3
	replenishTo     = 3
	skipAdvance     = 2
	standardAdvance = 1
)

// Game is the authoritative state of one match. Two connections can
// submit actions concurrently, so every operation runs under the
// game's mutex: callers observe either all of a mutation or none of
// it.
//
// A stalled player blocks the match indefinitely; there is no turn
// timeout.
type Game struct {
	mu sync.Mutex

	id      string
	players []string // identities in join order
	ready   map[string]bool
	hands   map[string]*PlayerCards
	deck    deck.Deck
	pile    []deck.Card
	discard []deck.Card
	turn    int
	stage   Stage
}

// NewGame constructs a match in the waiting-for-players stage
func NewGame(id string) *Game {
	return &Game{
		id:    id,
		ready: map[string]bool{},
		hands: map[string]*PlayerCards{},
	}
}

// ID returns the room identifier the match belongs to
func (g *Game) ID() string {
	return g.id
}

// Join adds a player identity to the match. Rejoining is a no-op.
// A third identity is rejected with ErrRoomFull.
func (g *Game) Join(playerID string) ([]Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayer(playerID) {
		if len(g.players) >= maxPlayers {
			return nil, ErrRoomFull
		}
		g.players = append(g.players, playerID)
	}

	return []Event{toRoom(protocol.OutboundMessage{
		Command: protocol.PlayersUpdate,
		RoomID:  g.id,
		Players: len(g.players),
	})}, nil
}

// Ready records a player's readiness for a new round. When the second
// player is ready the round starts: fresh shuffled deck, six cards to
// each hand and three face down, everything else reset.
func (g *Game) Ready(playerID string) ([]Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayer(playerID) {
		return nil, ErrWrongPhase
	}

	g.ready[playerID] = true
	if len(g.ready) < maxPlayers || len(g.players) < maxPlayers {
		return nil, nil
	}

	return g.startRound(), nil
}

// startRound must be called with the mutex held
func (g *Game) startRound() []Event {
	g.pile = nil
	g.discard = nil
	g.deck = deck.New()
	g.deck.Shuffle()
	g.ready = map[string]bool{}
	g.stage = preparing

	events := []Event{}
	for _, id := range g.players {
		pc := &PlayerCards{
			Hand:     g.deck.Deal(handSize),
			FaceDown: g.deck.Deal(faceDownSize),
			Mode:     ModePrepare,
		}
		g.hands[id] = pc

		// the face-down cards stay unknown to everyone, including
		// their owner: only the count leaves the game core
		events = append(events, toPlayer(id, protocol.OutboundMessage{
			Command:       protocol.SelectFaceUpCards,
			RoomID:        g.id,
			Hand:          cardsCopy(pc.Hand),
			FaceDownCount: len(pc.FaceDown),
			DeckCount:     len(g.deck),
		}))
	}

	return events
}

// ChooseFaceUp moves three chosen cards from the player's hand to
// their face-up row. When both players have chosen, play begins with
// the first joiner.
func (g *Game) ChooseFaceUp(playerID string, cards []deck.Card) ([]Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pc, ok := g.hands[playerID]
	if g.stage != preparing || !ok || pc.Mode != ModePrepare {
		return nil, ErrWrongPhase
	}

	if len(cards) != faceUpSize || !containsAll(pc.Hand, cards) {
		return nil, ErrInvalidSelection
	}

	pc.FaceUp = cardsCopy(cards)
	pc.Hand = removeCards(pc.Hand, cards)
	pc.Mode = ModeReady

	events := []Event{toPlayer(playerID, protocol.OutboundMessage{
		Command:       protocol.SelectFaceUpCards,
		RoomID:        g.id,
		Hand:          cardsCopy(pc.Hand),
		FaceUp:        cardsCopy(pc.FaceUp),
		FaceDownCount: len(pc.FaceDown),
		DeckCount:     len(g.deck),
	})}

	for _, id := range g.players {
		if g.hands[id].Mode != ModeReady {
			return events, nil
		}
	}

	// both chosen: general play begins
	g.stage = active
	g.turn = 0
	for _, id := range g.players {
		g.hands[id].Mode = ModePlay
		events = append(events, toRoom(protocol.OutboundMessage{
			Command:   protocol.StartGame,
			RoomID:    g.id,
			PlayerID:  id,
			FaceUp:    cardsCopy(g.hands[id].FaceUp),
			DeckCount: len(g.deck),
		}))
	}
	events = append(events, g.yourTurnEvent())

	return events, nil
}

// PlayCards plays a same-rank set of cards from the player's active
// zone onto the pile.
//
// Fours may be played onto an empty pile by either player, out of
// turn; the turn jumps to them before the normal advancement applies.
func (g *Game) PlayCards(playerID string, cards []deck.Card) ([]Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stage != active {
		return nil, ErrWrongPhase
	}
	pc, ok := g.hands[playerID]
	if !ok {
		return nil, ErrNotYourTurn
	}

	jumpIn := len(g.pile) == 0 && len(cards) > 0 && allOfRank(cards, deck.Four)
	if !jumpIn && g.players[g.turn] != playerID {
		return nil, ErrNotYourTurn
	}

	zone, fromHand := pc.activeZone()
	if len(cards) == 0 || !containsAll(*zone, cards) {
		return nil, ErrInvalidMove
	}
	if !isLegalPlay(g.pile, cards) {
		return nil, ErrInvalidMove
	}

	if jumpIn {
		g.turn = g.playerIndex(playerID)
	}

	*zone = removeCards(*zone, cards)
	g.pile = append(g.pile, cards...)

	events := g.resolvePile()
	g.advanceTurn()

	if fromHand {
		for len(pc.Hand) < replenishTo && len(g.deck) > 0 {
			pc.Hand = append(pc.Hand, g.deck.Deal(1)...)
		}
	}

	if pc.finished() {
		return append(events, g.gameOverEvent(playerID)), nil
	}

	events = append(events, g.playResultEvents(playerID, cards, nil, false)...)
	events = append(events, g.stripNextPlayerQuads()...)
	events = append(events, g.yourTurnEvent())

	return events, nil
}

// PickUpPile moves the whole pile into the current player's hand and
// passes the turn. No legality check applies.
func (g *Game) PickUpPile(playerID string) ([]Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stage != active {
		return nil, ErrWrongPhase
	}
	if !g.isPlayer(playerID) || g.players[g.turn] != playerID {
		return nil, ErrNotYourTurn
	}

	pc := g.hands[playerID]
	pc.Hand = append(pc.Hand, g.pile...)
	g.pile = nil
	g.turn = (g.turn + standardAdvance) % len(g.players)

	events := g.playResultEvents(playerID, nil, nil, false)
	events = append(events, g.yourTurnEvent())
	return events, nil
}

// PlayFaceDown reveals the face-down card at index and plays it blind.
// An illegal reveal is a penalty: the card and the whole pile go into
// the player's hand and the turn passes.
func (g *Game) PlayFaceDown(playerID string, index int) ([]Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stage != active {
		return nil, ErrWrongPhase
	}
	pc, ok := g.hands[playerID]
	if !ok || g.players[g.turn] != playerID {
		return nil, ErrNotYourTurn
	}
	if len(pc.Hand) > 0 || len(pc.FaceUp) > 0 || len(pc.FaceDown) == 0 {
		return nil, ErrWrongPhase
	}
	if index < 0 || index >= len(pc.FaceDown) {
		// ignored, matching the contract for a stale client index
		return nil, nil
	}

	card := pc.FaceDown[index]
	pc.FaceDown = append(pc.FaceDown[:index], pc.FaceDown[index+1:]...)

	if !isLegalPlay(g.pile, []deck.Card{card}) {
		// penalty pickup: the revealed card plus the pile
		pc.Hand = append(pc.Hand, card)
		pc.Hand = append(pc.Hand, g.pile...)
		g.pile = nil
		g.turn = (g.turn + standardAdvance) % len(g.players)

		events := g.playResultEvents(playerID, nil, &card, true)
		events = append(events, g.stripNextPlayerQuads()...)
		events = append(events, g.yourTurnEvent())
		return events, nil
	}

	g.pile = append(g.pile, card)

	events := g.resolvePile()
	g.advanceTurn()

	if pc.finished() {
		return append(events, g.gameOverEvent(playerID)), nil
	}

	events = append(events, g.playResultEvents(playerID, []deck.Card{card}, &card, false)...)
	events = append(events, g.stripNextPlayerQuads()...)
	events = append(events, g.yourTurnEvent())

	return events, nil
}

// Reset evicts all players and returns the match to the
// waiting-for-players stage
func (g *Game) Reset() []Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.players = nil
	g.ready = map[string]bool{}
	g.hands = map[string]*PlayerCards{}
	g.deck = nil
	g.pile = nil
	g.discard = nil
	g.turn = 0
	g.stage = waitingForPlayers

	return []Event{
		toRoom(protocol.OutboundMessage{
			Command: protocol.ForceDisconnect,
			RoomID:  g.id,
			Message: "all players were disconnected",
		}),
		toRoom(protocol.OutboundMessage{
			Command: protocol.PlayersUpdate,
			RoomID:  g.id,
			Players: 0,
		}),
	}
}

// Leave removes a player and reports the remaining occupancy. The
// store deletes the room once it reaches zero.
func (g *Game) Leave(playerID string) ([]Event, int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	kept := []string{}
	for _, id := range g.players {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	g.players = kept
	delete(g.ready, playerID)

	if len(g.players) == 0 {
		return nil, 0
	}
	if g.turn >= len(g.players) {
		g.turn = 0
	}

	return []Event{toRoom(protocol.OutboundMessage{
		Command: protocol.PlayersUpdate,
		RoomID:  g.id,
		Players: len(g.players),
	})}, len(g.players)
}

// resolvePile applies the Ten and four-of-a-kind pile clears after
// cards land on the pile, and must be called with the mutex held. A
// Ten always burns the pile; a quad burns it only if a Ten did not
// already. Cleared cards move to the discard.
func (g *Game) resolvePile() []Event {
	cleared := false

	if g.pile[len(g.pile)-1].Rank == deck.Ten {
		g.discard = append(g.discard, g.pile...)
		g.pile = nil
		cleared = true
	}

	if !cleared && endsInQuad(g.pile) {
		g.discard = append(g.discard, g.pile...)
		g.pile = nil
		cleared = true
	}

	if !cleared {
		return nil
	}
	return []Event{toRoom(protocol.OutboundMessage{
		Command: protocol.PileCleared,
		RoomID:  g.id,
	})}
}

// advanceTurn applies the standard advancement against the pile as it
// now stands: an Eight as the effective top gives the same player
// another turn, anything else passes play across. Must be called with
// the mutex held.
func (g *Game) advanceTurn() {
	by := standardAdvance
	if top, ok := effectiveTop(g.pile); ok && top.Rank == deck.Eight {
		by = skipAdvance
	}
	g.turn = (g.turn + by) % len(g.players)
}

// stripNextPlayerQuads removes four-of-a-kind groups from the next
// player's cards as a cleanup pass. It consumes no turn and never
// touches the pile. Must be called with the mutex held.
func (g *Game) stripNextPlayerQuads() []Event {
	next := g.players[g.turn]
	ranks, stripped := g.hands[next].removeQuads()
	if len(ranks) == 0 {
		return nil
	}
	g.discard = append(g.discard, stripped...)

	return []Event{toPlayer(next, protocol.OutboundMessage{
		Command: protocol.QuadsRemoved,
		RoomID:  g.id,
		Quads:   ranks,
	})}
}

// playResultEvents builds the room broadcast for a completed action
// plus the actor's private copy carrying their hand. Must be called
// with the mutex held.
func (g *Game) playResultEvents(playerID string, played []deck.Card, revealed *deck.Card, pickedUp bool) []Event {
	pc := g.hands[playerID]

	public := protocol.OutboundMessage{
		Command:   protocol.CardPlayed,
		RoomID:    g.id,
		PlayerID:  playerID,
		Cards:     cardsCopy(played),
		Pile:      cardsCopy(g.pile),
		FaceUp:    cardsCopy(pc.FaceUp),
		DeckCount: len(g.deck),
		Revealed:  revealed,
		PickedUp:  pickedUp,
	}

	private := public
	private.Hand = cardsCopy(pc.Hand)
	private.FaceDownCount = len(pc.FaceDown)

	return []Event{toRoom(public), toPlayer(playerID, private)}
}

func (g *Game) gameOverEvent(winner string) Event {
	g.stage = finished
	return toRoom(protocol.OutboundMessage{
		Command:   protocol.GameOver,
		RoomID:    g.id,
		Winner:    winner,
		DeckCount: len(g.deck),
	})
}

func (g *Game) yourTurnEvent() Event {
	return toPlayer(g.players[g.turn], protocol.OutboundMessage{
		Command: protocol.YourTurn,
		RoomID:  g.id,
	})
}

func (g *Game) isPlayer(playerID string) bool {
	return g.playerIndex(playerID) >= 0
}

func (g *Game) playerIndex(playerID string) int {
	for i, id := range g.players {
		if id == playerID {
			return i
		}
	}
	return -1
}

func allOfRank(cards []deck.Card, rank deck.Rank) bool {
	for _, c := range cards {
		if c.Rank != rank {
			return false
		}
	}
	return true
}

func cardsCopy(cards []deck.Card) []deck.Card {
	if cards == nil {
		return nil
	}
	return append([]deck.Card{}, cards...)
}
