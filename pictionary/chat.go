package pictionary

// ChatLog is the ordered, append-only list of display lines received from
// the authority. Lines arrive pre-formatted; the client never composes chat
// from other clients' guesses.
type ChatLog struct {
	messages []string
}

// NewChatLog returns an empty log.
func NewChatLog() *ChatLog {
	return &ChatLog{}
}

// Append adds one line in arrival order.
func (l *ChatLog) Append(message string) {
	l.messages = append(l.messages, message)
}

// Messages returns a copy of the log.
func (l *ChatLog) Messages() []string {
	return append([]string(nil), l.messages...)
}

// Reset clears the log on a round reset.
func (l *ChatLog) Reset() {
	l.messages = nil
}
