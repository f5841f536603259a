package palace

import (
	"sync"
)

// GameStore maps room identifiers to matches
type GameStore interface {
	FindOrCreate(roomID string) *Game
	Find(roomID string) (*Game, bool)
	Remove(roomID string)
	Games() map[string]*Game
}

// InMemoryGameStore holds matches in memory. Rooms are created on
// first join and removed when the last player disconnects; idle rooms
// with players that never leave are kept forever.
type InMemoryGameStore struct {
	mu    sync.Mutex
	games map[string]*Game
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{games: map[string]*Game{}}
}

// FindOrCreate returns the match for a room, creating it if the room
// is unknown
func (s *InMemoryGameStore) FindOrCreate(roomID string) *Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	if game, ok := s.games[roomID]; ok {
		return game
	}
	game := NewGame(roomID)
	s.games[roomID] = game
	return game
}

// Find finds a match by room id
func (s *InMemoryGameStore) Find(roomID string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[roomID]
	return game, ok
}

// Remove deletes a room's match
func (s *InMemoryGameStore) Remove(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, roomID)
}

// Games returns a snapshot of the current rooms
func (s *InMemoryGameStore) Games() map[string]*Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := map[string]*Game{}
	for id, game := range s.games {
		games[id] = game
	}
	return games
}
