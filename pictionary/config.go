package pictionary

import (
	"strings"
	"time"
)

// Config controls how the SDK connects.
type Config struct {
	URL              string // full room endpoint, e.g. ws://host/ws/<room>
	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration // 0 disables; the connection is long-lived
	WriteTimeout     time.Duration

	// AutoReconnect redials the same URL after a transport failure.
	AutoReconnect bool

	// ReconnectInterval is the base delay between redials.
	ReconnectInterval time.Duration

	// MaxReconnectDelay caps the delay growth. Equal to ReconnectInterval
	// (or a factor of 1) gives the fixed-interval behavior.
	MaxReconnectDelay time.Duration

	// ReconnectBackoffFactor multiplies the delay per failed attempt.
	ReconnectBackoffFactor float64

	// MaxReconnectTries bounds consecutive failed redials. 0 means retry
	// forever.
	MaxReconnectTries int
}

// DefaultConfig returns sensible defaults: a fixed 2s reconnect interval,
// retrying forever.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout:       10 * time.Second,
		WriteTimeout:           10 * time.Second,
		AutoReconnect:          true,
		ReconnectInterval:      2 * time.Second,
		MaxReconnectDelay:      2 * time.Second,
		ReconnectBackoffFactor: 1,
	}
}

// RoomURL joins a base websocket endpoint with an opaque room token.
func RoomURL(base, roomID string) string {
	return strings.TrimRight(base, "/") + "/" + roomID
}
