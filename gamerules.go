package palace

import (
	"palace/deck"
)

const burnNum = 4

// effectiveTop returns the topmost pile card that is not a Three.
// Threes are transparent: a play is always compared against whatever
// they were played on. Reports false if the pile is empty or all
// Threes.
func effectiveTop(pile []deck.Card) (deck.Card, bool) {
	for i := len(pile) - 1; i >= 0; i-- {
		if pile[i].Rank != deck.Three {
			return pile[i], true
		}
	}
	return deck.Card{}, false
}

// isLegalPlay reports whether cards may be played on the pile.
//
// A multi-card play must be a single rank. Twos, Threes and Tens are
// always playable. A Seven on top inverts the comparison: the play
// must be equal or lower. Anything else must be equal or higher.
func isLegalPlay(pile, cards []deck.Card) bool {
	if len(cards) == 0 {
		return false
	}

	rank := cards[0].Rank
	for _, c := range cards[1:] {
		if c.Rank != rank {
			return false
		}
	}

	if len(pile) == 0 {
		return true
	}

	top, ok := effectiveTop(pile)
	if !ok {
		// nothing but Threes underneath
		return true
	}

	switch rank {
	case deck.Two, deck.Three, deck.Ten:
		return true
	}

	if top.Rank == deck.Seven {
		return rank.Value() <= top.Rank.Value()
	}
	return rank.Value() >= top.Rank.Value()
}

// endsInQuad reports whether the last four pile cards share one rank
func endsInQuad(pile []deck.Card) bool {
	if len(pile) < burnNum {
		return false
	}
	lastFour := pile[len(pile)-burnNum:]
	for _, c := range lastFour {
		if c.Rank != lastFour[0].Rank {
			return false
		}
	}
	return true
}
