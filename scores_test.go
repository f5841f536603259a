package palace

import (
	"context"
	"errors"
	"testing"
	"time"

	utils "palace/internal"
)

type stubScoreStore struct {
	loaded  map[string]int
	loadErr error
	saveErr error
	saves   chan string
}

func (s *stubScoreStore) Load(ctx context.Context) (map[string]int, error) {
	return s.loaded, s.loadErr
}

func (s *stubScoreStore) Save(ctx context.Context, name string, wins int) error {
	if s.saves != nil {
		s.saves <- name
	}
	return s.saveErr
}

func TestScoreLedgerLoad(t *testing.T) {
	t.Run("fills recognised names, defaults the rest to zero", func(t *testing.T) {
		store := &stubScoreStore{loaded: map[string]int{"jule": 7, "stranger": 99}}
		ledger := NewScoreLedger(store, []string{"jule", "finn"})

		err := ledger.Load(context.Background())
		utils.AssertNoError(t, err)

		utils.AssertDeepEqual(t, ledger.Scores(), map[string]int{"jule": 7, "finn": 0})
	})

	t.Run("surfaces a store failure", func(t *testing.T) {
		store := &stubScoreStore{loadErr: errors.New("connection refused")}
		ledger := NewScoreLedger(store, []string{"jule", "finn"})

		utils.AssertErrored(t, ledger.Load(context.Background()))
	})
}

func TestScoreLedgerRecordWin(t *testing.T) {
	t.Run("increments immediately and writes through", func(t *testing.T) {
		store := &stubScoreStore{saves: make(chan string, 2)}
		ledger := NewScoreLedger(store, []string{"jule", "finn"})

		ledger.RecordWin("jule")
		ledger.RecordWin("jule")

		utils.AssertEqual(t, ledger.Scores()["jule"], 2)

		utils.Within(t, time.Second, func() {
			<-store.saves
		})
	})

	t.Run("a failing store does not lose the win", func(t *testing.T) {
		store := &stubScoreStore{saveErr: errors.New("connection refused")}
		ledger := NewScoreLedger(store, []string{"jule", "finn"})

		ledger.RecordWin("finn")

		utils.AssertEqual(t, ledger.Scores()["finn"], 1)
	})

	t.Run("unrecognised names are ignored", func(t *testing.T) {
		store := &stubScoreStore{}
		ledger := NewScoreLedger(store, []string{"jule", "finn"})

		ledger.RecordWin("stranger")

		utils.AssertDeepEqual(t, ledger.Scores(), map[string]int{"jule": 0, "finn": 0})
	})
}

func TestScoresSnapshot(t *testing.T) {
	ledger := NewScoreLedger(NewInMemoryScoreStore(), []string{"jule"})

	snapshot := ledger.Scores()
	snapshot["jule"] = 42

	utils.AssertEqual(t, ledger.Scores()["jule"], 0)
}
