package protocol

import (
	"encoding/json"
	"fmt"
)

// Cmd represents a command. Client-to-server actions and
// server-to-client notifications share one namespace.
type Cmd int

const (
	Null Cmd = iota

	// inbound actions
	SelectPlayer
	JoinRoom
	Ready
	ChooseFaceUp
	PlayCards
	PickUpPile
	PlayFaceDown
	DisconnectAll

	// outbound notifications
	PlayersUpdate
	SelectFaceUpCards
	StartGame
	YourTurn
	CardPlayed
	PileCleared
	InvalidMove
	InvalidSelection
	QuadsRemoved
	GameOver
	ScoresUpdate
	RoomFull
	ForceDisconnect
)

var cmdNames = map[Cmd]string{
	Null:              "null",
	SelectPlayer:      "select_player",
	JoinRoom:          "join_room",
	Ready:             "ready",
	ChooseFaceUp:      "set_open_cards",
	PlayCards:         "play_card",
	PickUpPile:        "pickup_pile",
	PlayFaceDown:      "play_facedown",
	DisconnectAll:     "disconnect_all",
	PlayersUpdate:     "players_update",
	SelectFaceUpCards: "select_open_cards",
	StartGame:         "start_game",
	YourTurn:          "your_turn",
	CardPlayed:        "card_played",
	PileCleared:       "pile_cleared",
	InvalidMove:       "invalid_move",
	InvalidSelection:  "invalid_selection",
	QuadsRemoved:      "quads_removed",
	GameOver:          "game_over",
	ScoresUpdate:      "scores_update",
	RoomFull:          "room_full",
	ForceDisconnect:   "force_disconnect",
}

var nameToCmd = func() map[string]Cmd {
	m := map[string]Cmd{}
	for cmd, name := range cmdNames {
		m[name] = cmd
	}
	return m
}()

func (c Cmd) String() string {
	return cmdNames[c]
}

func (c Cmd) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Cmd) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	cmd, ok := nameToCmd[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	*c = cmd
	return nil
}
