package palace

import "errors"

var (
	// ErrRoomFull means a third identity tried to join a two-player room
	ErrRoomFull = errors.New("room already has two players")

	// ErrInvalidSelection means a face-up choice was not exactly three
	// cards from the player's hand
	ErrInvalidSelection = errors.New("must choose exactly 3 cards from your hand")

	// ErrInvalidMove means a play failed the legality check or referenced
	// cards the player does not hold
	ErrInvalidMove = errors.New("cards are not playable")

	// ErrNotYourTurn is swallowed by the gateway: unauthorised actions
	// must produce no observable effect
	ErrNotYourTurn = errors.New("not your turn")

	// ErrWrongPhase means the action is not valid in the game's current
	// phase. Also swallowed by the gateway.
	ErrWrongPhase = errors.New("action not valid in this phase")
)
