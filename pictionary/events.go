package pictionary

// DrawEvent is one pen sample replicated from the drawer.
type DrawEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ChatEvent is a display line fanned out by the authority.
type ChatEvent struct {
	Message string `json:"message"`
}

// RoleEvent is the authoritative role assignment for the local client.
// Word is set only when the local client is the drawer.
type RoleEvent struct {
	IsDrawer bool   `json:"is_drawer"`
	Word     string `json:"word,omitempty"`
}

// WinEvent announces the participant who guessed the word.
type WinEvent struct {
	Name string `json:"name"`
}
