package protocol

import (
	"palace/deck"
)

// InboundMessage is a message from a client to the game server
type InboundMessage struct {
	Command Cmd         `json:"command"`
	RoomID  string      `json:"roomID"`
	Name    string      `json:"name,omitempty"`
	Cards   []deck.Card `json:"cards,omitempty"`
	Index   int         `json:"index"`
}

// OutboundMessage is a message from the game server to a client
type OutboundMessage struct {
	Command       Cmd            `json:"command"`
	RoomID        string         `json:"roomID,omitempty"`
	PlayerID      string         `json:"playerID,omitempty"`
	Cards         []deck.Card    `json:"cards,omitempty"`
	Pile          []deck.Card    `json:"pile,omitempty"`
	Hand          []deck.Card    `json:"hand,omitempty"`
	FaceUp        []deck.Card    `json:"faceUp,omitempty"`
	FaceDownCount int            `json:"faceDownCount,omitempty"`
	DeckCount     int            `json:"deckCount"`
	Revealed      *deck.Card     `json:"revealed,omitempty"`
	PickedUp      bool           `json:"pickedUp,omitempty"`
	Quads         []deck.Rank    `json:"quads,omitempty"`
	Winner        string         `json:"winner,omitempty"`
	Scores        map[string]int `json:"scores,omitempty"`
	Players       int            `json:"players,omitempty"`
	Message       string         `json:"message,omitempty"`
}
