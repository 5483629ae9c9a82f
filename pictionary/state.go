package pictionary

// ConnectionState represents the current state of the WebSocket connection.
type ConnectionState int

const (
	// StateDisconnected means the client is not connected and no retry is
	// pending (initial state, or retries exhausted).
	StateDisconnected ConnectionState = iota

	// StateConnecting means the client is establishing a connection.
	StateConnecting

	// StateConnected means the client is connected and ready.
	StateConnected

	// StateReconnecting means the connection was lost and a redial is
	// pending after the reconnect delay.
	StateReconnecting

	// StateClosed means the client has been explicitly closed by the user.
	StateClosed
)

// String returns the string representation of a ConnectionState.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// StateEvent represents a connection state change.
type StateEvent struct {
	OldState ConnectionState
	NewState ConnectionState
	Error    error // Optional error that caused the state change
}

// Role is a participant role for one round.
type Role int

const (
	RoleGuesser Role = iota
	RoleDrawer
)

// String returns the wire representation of a Role.
func (r Role) String() string {
	if r == RoleDrawer {
		return "drawer"
	}
	return "guesser"
}

// RoundPhase is the client-side mirror of the round lifecycle.
type RoundPhase int

const (
	// PhaseLobby is the pre-join state, local only.
	PhaseLobby RoundPhase = iota

	// PhaseAwaitingRole means join was sent but no role frame arrived yet.
	PhaseAwaitingRole

	// PhaseActive means a role is assigned and the round is in progress.
	PhaseActive

	// PhaseRoundWon means a win frame arrived and the round is over.
	PhaseRoundWon
)

// String returns the string representation of a RoundPhase.
func (p RoundPhase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseAwaitingRole:
		return "awaiting_role"
	case PhaseActive:
		return "active"
	case PhaseRoundWon:
		return "round_won"
	default:
		return "unknown"
	}
}
