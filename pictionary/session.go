package pictionary

import (
	"context"
	"errors"
	"sync"

	"github.com/rzambranobaires/pictionary-game/pictionary/identity"
)

// authority is the outbound surface a session needs; *Client satisfies it.
type authority interface {
	Join(ctx context.Context, name string, role Role, sessionID string) error
	SendDraw(ctx context.Context, x, y float64) error
	SendChat(ctx context.Context, message string) error
	SendGuess(ctx context.Context, name, guess string) error
	NewRound(ctx context.Context) error
}

// SessionOptions tunes session behavior.
type SessionOptions struct {
	// AutoRejoin re-sends join with the persisted identity after a
	// reconnect completes, restoring the server-side association that a
	// rebuilt connection otherwise loses. Off by default: the authority
	// contract does not promise idempotent joins mid-round.
	AutoRejoin bool

	// OnServerError receives authority-reported errors (room full, drawer
	// seat taken). The session has already dropped to the pre-join
	// presentation when it fires.
	OnServerError func(message string)

	// OnStateChanged forwards connection state transitions.
	OnStateChanged func(StateEvent)

	// OnRoleAssigned fires after an authoritative role assignment has been
	// applied. UI layers use it to re-gate input.
	OnRoleAssigned func(RoleEvent)

	// OnRoundWon fires when a win announcement arrives.
	OnRoundWon func(winnerName string)

	// OnChatMessage fires for each appended chat line.
	OnChatMessage func(message string)

	Logger Logger
}

// Session binds one room's connection, round machine, stroke surface, and
// chat log together, and gates user input by the authoritative role. It is
// the one room client: room identity is a constructor argument.
//
// Event callbacks run on the connection's read goroutine; accessors may be
// called from any goroutine.
type Session struct {
	auth   authority
	ids    *identity.Manager
	roomID string
	opts   SessionOptions
	logger Logger

	mu      sync.Mutex
	round   *Round
	canvas  *Canvas
	chat    *ChatLog
	name    string
	joined  bool
	drawing bool // pointer held
}

// NewSession wires a session onto a client. Register no other callbacks on
// the client afterwards; the session owns its dispatcher.
func NewSession(client *Client, ids *identity.Manager, roomID string, opts SessionOptions) *Session {
	s := newSession(client, ids, roomID, opts)
	client.OnDraw(s.handleDraw)
	client.OnChat(s.handleChat)
	client.OnRole(s.handleRole)
	client.OnWin(s.handleWin)
	client.OnReset(s.handleReset)
	client.OnError(s.handleServerError)
	client.OnStateChanged(s.handleState)
	return s
}

func newSession(auth authority, ids *identity.Manager, roomID string, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	s := &Session{
		auth:   auth,
		ids:    ids,
		roomID: roomID,
		opts:   opts,
		logger: logger,
		round:  NewRound(),
		canvas: NewCanvas(),
		chat:   NewChatLog(),
	}
	// Prefill the display name last used in this room.
	if name, ok := ids.RecallDisplayName(roomID); ok {
		s.name = name
	}
	return s
}

// RoomID returns the opaque room token this session is bound to.
func (s *Session) RoomID() string { return s.roomID }

// Name returns the current display name (recalled or set by Join).
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Phase returns the current round phase.
func (s *Session) Phase() RoundPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Phase()
}

// Role returns the authoritative local role.
func (s *Session) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Role()
}

// Word returns the secret word; non-empty only for the drawer.
func (s *Session) Word() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Word()
}

// Winner returns the winner announcement for a won round.
func (s *Session) Winner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Winner()
}

// Disconnected reports the disconnected presentation flag.
func (s *Session) Disconnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Disconnected()
}

// Strokes returns the rendering projection of the stroke surface.
func (s *Session) Strokes() []Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Strokes()
}

// Messages returns the chat log.
func (s *Session) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.Messages()
}

// Join announces the participant with the persisted identity and remembers
// the display name for this room. The preferred role is a request only.
func (s *Session) Join(ctx context.Context, name string, preferred Role) error {
	s.ids.RememberDisplayName(s.roomID, name)
	if err := s.auth.Join(ctx, name, preferred, s.ids.ClientID()); err != nil {
		return err
	}
	s.mu.Lock()
	s.name = name
	s.joined = true
	s.round.BeginJoin()
	s.mu.Unlock()
	return nil
}

// PointerDown starts a local stroke. Ignored unless the local role is
// drawer in an active round.
func (s *Session) PointerDown(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.round.CanDraw() {
		return
	}
	s.drawing = true
	s.canvas.BeginStrokeAt(Point{X: x, Y: y})
}

// PointerMove extends the local stroke and replicates one draw frame per
// sample while the pointer is held. Guessers never emit draw frames.
func (s *Session) PointerMove(ctx context.Context, x, y float64) {
	s.mu.Lock()
	if !s.drawing || !s.round.CanDraw() {
		s.mu.Unlock()
		return
	}
	s.canvas.ExtendStrokeTo(Point{X: x, Y: y})
	s.mu.Unlock()

	if err := s.auth.SendDraw(ctx, x, y); err != nil {
		s.logger.Warn("draw sample lost", map[string]any{"error": err.Error()})
	}
}

// PointerUp ends the local stroke. No wire event; the next pointer-down
// starts an unconnected path. Also handles pointer-leave.
func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = false
	s.canvas.EndStroke()
}

// SubmitLine sends a submitted text line: always a chat frame carrying the
// pre-formatted "name: text" display line, plus a guess frame when the
// local role is guesser. The drawer cannot submit at all.
func (s *Session) SubmitLine(ctx context.Context, text string) error {
	s.mu.Lock()
	if !s.round.CanGuess() {
		s.mu.Unlock()
		return NewError(ErrorRoleViolation, "only guessers submit lines")
	}
	name := s.name
	s.mu.Unlock()

	if err := s.auth.SendChat(ctx, name+": "+text); err != nil {
		return err
	}
	return s.auth.SendGuess(ctx, name, text)
}

// StartNewRound asks the authority to advance past a won round and
// optimistically clears the winner, chat, and canvas; the authority pushes
// reset and fresh role frames to every participant afterwards.
func (s *Session) StartNewRound(ctx context.Context) error {
	if err := s.auth.NewRound(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.round.ApplyReset()
	s.canvas.Reset()
	s.chat.Reset()
	s.mu.Unlock()
	return nil
}

func (s *Session) handleDraw(ev DrawEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.ApplyRemote(ev)
}

func (s *Session) handleChat(ev ChatEvent) {
	s.mu.Lock()
	s.chat.Append(ev.Message)
	s.mu.Unlock()

	if s.opts.OnChatMessage != nil {
		s.opts.OnChatMessage(ev.Message)
	}
}

func (s *Session) handleRole(ev RoleEvent) {
	s.mu.Lock()
	s.round.ApplyRole(ev)
	// A role change ends any stroke in progress.
	s.drawing = false
	s.canvas.EndStroke()
	s.mu.Unlock()

	if s.opts.OnRoleAssigned != nil {
		s.opts.OnRoleAssigned(ev)
	}
}

func (s *Session) handleWin(ev WinEvent) {
	s.mu.Lock()
	s.round.ApplyWin(ev)
	s.mu.Unlock()

	if s.opts.OnRoundWon != nil {
		s.opts.OnRoundWon(ev.Name)
	}
}

func (s *Session) handleReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round.ApplyReset()
	s.canvas.Reset()
	s.chat.Reset()
	s.drawing = false
}

func (s *Session) handleServerError(err error) {
	s.mu.Lock()
	s.round.ApplyServerError()
	s.joined = false
	s.mu.Unlock()

	if s.opts.OnServerError != nil {
		msg := err.Error()
		var ge *GameError
		if errors.As(err, &ge) {
			msg = ge.Message
		}
		s.opts.OnServerError(msg)
	}
}

func (s *Session) handleState(ev StateEvent) {
	if ev.NewState == StateConnected && s.opts.AutoRejoin {
		s.mu.Lock()
		rejoin := s.joined
		name := s.name
		preferred := s.round.Role()
		s.mu.Unlock()
		if rejoin {
			if err := s.Join(context.Background(), name, preferred); err != nil {
				s.logger.Warn("auto-rejoin failed", map[string]any{"error": err.Error()})
			}
		}
	}
	if s.opts.OnStateChanged != nil {
		s.opts.OnStateChanged(ev)
	}
}
