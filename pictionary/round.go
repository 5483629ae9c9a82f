package pictionary

// Round mirrors the authority's view of the current round on the client:
// phase, local role, the secret word when the local client draws, and the
// winner announcement. Transitions are driven by authority events only; the
// client never advances phase on its own except back to the lobby before a
// join.
//
// Round is owned by a single event loop and is not safe for concurrent use;
// Session serializes access to it.
type Round struct {
	phase        RoundPhase
	role         Role
	word         string
	winner       string
	disconnected bool
}

// NewRound returns a round in the lobby phase.
func NewRound() *Round {
	return &Round{phase: PhaseLobby}
}

func (r *Round) Phase() RoundPhase { return r.phase }
func (r *Round) Role() Role        { return r.role }

// Word returns the secret word. It is non-empty only while the local role
// is drawer.
func (r *Round) Word() string { return r.word }

// Winner returns the announced winner name; empty unless the phase is
// PhaseRoundWon.
func (r *Round) Winner() string { return r.winner }

// Disconnected reports whether the client dropped to the disconnected
// presentation after an authority error or an unrecoverable failure.
func (r *Round) Disconnected() bool { return r.disconnected }

// BeginJoin moves lobby to awaiting-role after a join is sent. It also
// clears the disconnected presentation so a re-join recovers the session.
func (r *Round) BeginJoin() {
	r.phase = PhaseAwaitingRole
	r.disconnected = false
}

// ApplyRole applies an authoritative role assignment. A guesser never holds
// the word.
func (r *Round) ApplyRole(ev RoleEvent) {
	r.phase = PhaseActive
	if ev.IsDrawer {
		r.role = RoleDrawer
		r.word = ev.Word
	} else {
		r.role = RoleGuesser
		r.word = ""
	}
}

// ApplyWin ends the round with a winner announcement.
func (r *Round) ApplyWin(ev WinEvent) {
	r.phase = PhaseRoundWon
	r.winner = ev.Name
}

// ApplyReset clears round-scoped state ahead of a fresh role assignment.
// No-op before a join: the reset broadcast also reaches clients still in
// the lobby.
func (r *Round) ApplyReset() {
	if r.phase == PhaseLobby {
		return
	}
	r.phase = PhaseAwaitingRole
	r.word = ""
	r.winner = ""
}

// ApplyServerError drops to the disconnected presentation. The machine is
// not terminal: a later re-join returns to awaiting-role.
func (r *Round) ApplyServerError() {
	r.phase = PhaseLobby
	r.word = ""
	r.winner = ""
	r.disconnected = true
}

// CanDraw reports whether pointer input may produce outbound draw frames.
func (r *Round) CanDraw() bool {
	return r.phase == PhaseActive && r.role == RoleDrawer && !r.disconnected
}

// CanGuess reports whether guess submission is allowed.
func (r *Round) CanGuess() bool {
	return r.role == RoleGuesser && r.phase != PhaseLobby && !r.disconnected
}
