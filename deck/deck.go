package deck

import (
	"math/rand"
	"time"
)

// Deck represents a deck of cards. The top of the deck is the end of
// the slice.
type Deck []Card

// New creates a full, ordered deck of 52 cards
func New() Deck {
	cards := Deck{}
	for suit := range suitNames {
		for rank := range rankNames {
			cards = append(cards, NewCard(Rank(rank), Suit(suit)))
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards in place
func (d *Deck) Shuffle() {
	rand.Seed(time.Now().UnixNano())
	actualDeck := *d
	for i := len(actualDeck) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	}
}

// Deal removes and returns up to n cards from the top of the deck.
// An exhausted deck deals fewer cards, down to none at all.
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 {
		return []Card{}
	}
	if n > numCardsInDeck {
		n = numCardsInDeck
	}
	startingIndex := numCardsInDeck - n
	dealt := append([]Card{}, (*d)[startingIndex:]...)
	*d = (*d)[:startingIndex]
	return dealt
}

// DealFromBottom removes and returns up to n cards from the bottom of
// the deck
func (d *Deck) DealFromBottom(n int) []Card {
	if n < 0 {
		return []Card{}
	}
	if n > len(*d) {
		n = len(*d)
	}
	dealt := append([]Card{}, (*d)[:n]...)
	*d = (*d)[n:]
	return dealt
}
