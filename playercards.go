package palace

import (
	"palace/deck"
)

// Mode represents where a player is in the hand-building sequence.
// prepare -> choosing their three face-up cards
// ready -> chosen, waiting for the opponent
// play -> general play has begun
type Mode int

const (
	ModePrepare Mode = iota
	ModeReady
	ModePlay
)

func (m Mode) String() string {
	switch m {
	case ModePrepare:
		return "prepare"
	case ModeReady:
		return "ready"
	case ModePlay:
		return "play"
	}
	return ""
}

// PlayerCards holds one player's three card zones. While in play the
// zones are disjoint: a card lives in exactly one of them.
type PlayerCards struct {
	Hand     []deck.Card
	FaceUp   []deck.Card
	FaceDown []deck.Card
	Mode     Mode
}

// activeZone is the zone cards are played from: the hand until it is
// empty, then the face-up cards. The face-down cards are never played
// through the active zone.
func (pc *PlayerCards) activeZone() (zone *[]deck.Card, isHand bool) {
	if len(pc.Hand) > 0 || len(pc.FaceUp) == 0 {
		return &pc.Hand, true
	}
	return &pc.FaceUp, false
}

// finished reports whether the player has shed every card
func (pc *PlayerCards) finished() bool {
	return len(pc.Hand) == 0 &&
		len(pc.FaceUp) == 0 &&
		len(pc.FaceDown) == 0
}

func containsAll(zone, cards []deck.Card) bool {
	remaining := map[deck.Card]struct{}{}
	for _, c := range zone {
		remaining[c] = struct{}{}
	}
	for _, c := range cards {
		if _, ok := remaining[c]; !ok {
			return false
		}
		delete(remaining, c)
	}
	return true
}

func removeCards(zone []deck.Card, cards []deck.Card) []deck.Card {
	toRemove := map[deck.Card]struct{}{}
	for _, c := range cards {
		toRemove[c] = struct{}{}
	}

	kept := []deck.Card{}
	for _, c := range zone {
		if _, ok := toRemove[c]; ok {
			delete(toRemove, c)
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// removeQuads strips every rank held exactly four times from the hand,
// then from the face-up cards if that emptied the hand. It returns the
// stripped ranks and the stripped cards, which the caller moves to the
// discard to keep the 52-card universe intact.
func (pc *PlayerCards) removeQuads() ([]deck.Rank, []deck.Card) {
	ranks := []deck.Rank{}
	stripped := []deck.Card{}

	strip := func(zone []deck.Card) []deck.Card {
		counts := map[deck.Rank]int{}
		for _, c := range zone {
			counts[c.Rank]++
		}

		kept := []deck.Card{}
		for _, c := range zone {
			if counts[c.Rank] == burnNum {
				stripped = append(stripped, c)
				continue
			}
			kept = append(kept, c)
		}
		for rank, n := range counts {
			if n == burnNum {
				ranks = append(ranks, rank)
			}
		}
		return kept
	}

	pc.Hand = strip(pc.Hand)
	if len(pc.Hand) == 0 && len(pc.FaceUp) > 0 {
		pc.FaceUp = strip(pc.FaceUp)
	}

	return ranks, stripped
}
