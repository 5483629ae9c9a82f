package pictionary

import "encoding/json"

// Frame type discriminators. Every frame on the wire is a flat JSON object
// with a "type" field; there is no outer envelope.
const (
	frameJoin     = "join"
	frameDraw     = "draw"
	frameChat     = "chat"
	frameGuess    = "guess"
	frameNewRound = "new_round"

	frameRole  = "role"
	frameWin   = "win"
	frameReset = "reset"
	frameError = "error"
)

// joinFrame announces a participant to the authority. Role is a request;
// the authoritative assignment arrives later in a role frame.
type joinFrame struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
}

// drawFrame carries one pen sample in canvas coordinates.
type drawFrame struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// chatFrame carries a pre-formatted display line.
type chatFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// guessFrame submits a guess for judging. Sent alongside chat, never
// instead of it.
type guessFrame struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Guess string `json:"guess"`
}

// newRoundFrame asks the authority to advance past a won round.
type newRoundFrame struct {
	Type string `json:"type"`
}

// inboundFrame is the superset decode target for authority frames. Pointer
// fields let the dispatcher tell a missing required field from a zero value.
type inboundFrame struct {
	Type     string   `json:"type"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Message  *string  `json:"message"`
	IsDrawer *bool    `json:"is_drawer"`
	Word     *string  `json:"word"`
	Name     *string  `json:"name"`
}

func decodeFrame(raw json.RawMessage) (inboundFrame, error) {
	var f inboundFrame
	err := json.Unmarshal(raw, &f)
	return f, err
}
