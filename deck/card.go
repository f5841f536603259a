package deck

import (
	"encoding/json"
	"fmt"
)

// Rank represents a rank in a deck of cards
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var nameToRank = func() map[string]Rank {
	m := map[string]Rank{}
	for i, name := range rankNames {
		m[name] = Rank(i)
	}
	return m
}()

// Value returns a rank's comparison value, from 2 (Two) to 14 (Ace)
func (r Rank) Value() int {
	return int(r) + 2
}

func (r Rank) String() string {
	return rankNames[r]
}

func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	rank, ok := nameToRank[name]
	if !ok {
		return fmt.Errorf("unknown rank %q", name)
	}
	*r = rank
	return nil
}

// Suit represents a suit in a deck of cards
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitNames = []string{"♣", "♦", "♥", "♠"}

var nameToSuit = func() map[string]Suit {
	m := map[string]Suit{}
	for i, name := range suitNames {
		m[name] = Suit(i)
	}
	return m
}()

func (s Suit) String() string {
	return suitNames[s]
}

func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	suit, ok := nameToSuit[name]
	if !ok {
		return fmt.Errorf("unknown suit %q", name)
	}
	*s = suit
	return nil
}

// Card represents a playing card. Cards are comparable values:
// two Cards are equal iff rank and suit match.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard constructs a card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// wireCard is the client-facing shape of a card
type wireCard struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireCard{Rank: c.Rank.String(), Suit: c.Suit.String()})
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var wc wireCard
	if err := json.Unmarshal(data, &wc); err != nil {
		return err
	}
	rank, ok := nameToRank[wc.Rank]
	if !ok {
		return fmt.Errorf("unknown rank %q", wc.Rank)
	}
	suit, ok := nameToSuit[wc.Suit]
	if !ok {
		return fmt.Errorf("unknown suit %q", wc.Suit)
	}
	c.Rank, c.Suit = rank, suit
	return nil
}
