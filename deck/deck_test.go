package deck

import (
	"testing"
)

var fullDeckCount = 52

func TestDeck(t *testing.T) {
	deckOfCards := New()

	if len(deckOfCards) != fullDeckCount {
		t.Errorf("got %d cards, want %d", len(deckOfCards), fullDeckCount)
	}

	seen := map[Card]struct{}{}
	for _, c := range deckOfCards {
		if _, ok := seen[c]; ok {
			t.Errorf("duplicate card %s", c)
		}
		seen[c] = struct{}{}
	}
}

func TestDeckShuffle(t *testing.T) {
	deckOfCards := New()
	deckOfCards.Shuffle()

	if len(deckOfCards) != fullDeckCount {
		t.Errorf("got %d cards after shuffle, want %d", len(deckOfCards), fullDeckCount)
	}

	// still one of each card
	seen := map[Card]struct{}{}
	for _, c := range deckOfCards {
		seen[c] = struct{}{}
	}
	if len(seen) != fullDeckCount {
		t.Errorf("got %d unique cards after shuffle, want %d", len(seen), fullDeckCount)
	}
}

func TestDeckDeal(t *testing.T) {
	t.Run("deals from the top", func(t *testing.T) {
		deckOfCards := New()
		top := deckOfCards[len(deckOfCards)-1]

		dealt := deckOfCards.Deal(1)

		if len(dealt) != 1 {
			t.Fatalf("got %d cards, want 1", len(dealt))
		}
		if dealt[0] != top {
			t.Errorf("got %s, want %s", dealt[0], top)
		}
		if len(deckOfCards) != fullDeckCount-1 {
			t.Errorf("got %d cards remaining, want %d", len(deckOfCards), fullDeckCount-1)
		}
	})

	t.Run("deals fewer cards when the deck runs out", func(t *testing.T) {
		deckOfCards := New()
		deckOfCards.Deal(50)

		dealt := deckOfCards.Deal(6)
		if len(dealt) != 2 {
			t.Errorf("got %d cards, want 2", len(dealt))
		}

		dealt = deckOfCards.Deal(6)
		if len(dealt) != 0 {
			t.Errorf("got %d cards from an empty deck, want 0", len(dealt))
		}
	})

	t.Run("rejects a negative count", func(t *testing.T) {
		deckOfCards := New()

		dealt := deckOfCards.Deal(-1)
		if len(dealt) != 0 {
			t.Errorf("got %d cards, want 0", len(dealt))
		}
		if len(deckOfCards) != fullDeckCount {
			t.Errorf("got %d cards remaining, want %d", len(deckOfCards), fullDeckCount)
		}
	})
}

func TestDeckDealFromBottom(t *testing.T) {
	deckOfCards := New()
	bottom := deckOfCards[0]

	dealt := deckOfCards.DealFromBottom(3)

	if len(dealt) != 3 {
		t.Fatalf("got %d cards, want 3", len(dealt))
	}
	if dealt[0] != bottom {
		t.Errorf("got %s, want %s", dealt[0], bottom)
	}
	if len(deckOfCards) != fullDeckCount-3 {
		t.Errorf("got %d cards remaining, want %d", len(deckOfCards), fullDeckCount-3)
	}
}
