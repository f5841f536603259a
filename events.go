package palace

import (
	"palace/protocol"
)

// Event is a notification produced by a game operation. The game core
// never touches a connection; the gateway delivers events after the
// operation returns.
type Event struct {
	// To is the identity of the recipient. Empty means everyone in the
	// room.
	To  string
	Msg protocol.OutboundMessage
}

func toRoom(msg protocol.OutboundMessage) Event {
	return Event{Msg: msg}
}

func toPlayer(id string, msg protocol.OutboundMessage) Event {
	return Event{To: id, Msg: msg}
}
