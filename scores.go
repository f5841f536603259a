package palace

import (
	"context"
	"log"
	"sync"
)

// ScoreStore is the durable backing for cumulative win counts
type ScoreStore interface {
	Load(ctx context.Context) (map[string]int, error)
	Save(ctx context.Context, name string, wins int) error
}

// ScoreLedger tracks cumulative wins for a fixed set of recognised
// player names. The in-memory counts are authoritative; the store is
// written best-effort and a failed write never reaches game flow.
type ScoreLedger struct {
	mu     sync.Mutex
	store  ScoreStore
	scores map[string]int
}

// NewScoreLedger constructs a ledger with every recognised name at
// zero wins
func NewScoreLedger(store ScoreStore, names []string) *ScoreLedger {
	scores := map[string]int{}
	for _, name := range names {
		scores[name] = 0
	}
	return &ScoreLedger{store: store, scores: scores}
}

// Load fills the ledger from the store. Names missing from the store
// stay at zero; stored names that are not recognised are ignored.
func (l *ScoreLedger) Load(ctx context.Context) error {
	stored, err := l.store.Load(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for name, wins := range stored {
		if _, ok := l.scores[name]; ok {
			l.scores[name] = wins
		}
	}
	return nil
}

// RecordWin increments a recognised player's win count and schedules
// a durable write. The increment is visible immediately regardless of
// whether the write succeeds.
func (l *ScoreLedger) RecordWin(name string) {
	l.mu.Lock()
	wins, ok := l.scores[name]
	if !ok {
		l.mu.Unlock()
		return
	}
	wins++
	l.scores[name] = wins
	l.mu.Unlock()

	go func() {
		if err := l.store.Save(context.Background(), name, wins); err != nil {
			log.Printf("saving score for %s: %v", name, err)
		}
	}()
}

// Scores returns a snapshot of the current win counts
func (l *ScoreLedger) Scores() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	scores := map[string]int{}
	for name, wins := range l.scores {
		scores[name] = wins
	}
	return scores
}

// InMemoryScoreStore is a ScoreStore with no durability, used in
// tests and when no redis is configured
type InMemoryScoreStore struct {
	mu sync.Mutex
	m  map[string]int
}

// NewInMemoryScoreStore constructs an empty InMemoryScoreStore
func NewInMemoryScoreStore() *InMemoryScoreStore {
	return &InMemoryScoreStore{m: map[string]int{}}
}

func (s *InMemoryScoreStore) Load(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := map[string]int{}
	for name, wins := range s.m {
		loaded[name] = wins
	}
	return loaded, nil
}

func (s *InMemoryScoreStore) Save(ctx context.Context, name string, wins int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[name] = wins
	return nil
}
