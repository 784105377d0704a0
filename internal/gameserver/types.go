package gameserver

// ClientConnectionState represents the state machine for a client connection.
type ClientConnectionState int32

const (
	ClientStateConnected    ClientConnectionState = iota // TCP connected, waiting for login
	ClientStateInGame                                    // character in world, commands accepted
	ClientStateDisconnected                              // connection closed
)

func (s ClientConnectionState) String() string {
	switch s {
	case ClientStateConnected:
		return "CONNECTED"
	case ClientStateInGame:
		return "IN_GAME"
	case ClientStateDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}
