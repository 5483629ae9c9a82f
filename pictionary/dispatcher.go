package pictionary

import "encoding/json"

// Dispatcher routes inbound frames to registered callbacks. Each frame type
// has exactly one owner; unknown or malformed frames are logged and dropped,
// never propagated as fatal. Dispatch is synchronous: callbacks run on the
// caller's goroutine in wire-arrival order.
type Dispatcher struct {
	logger Logger

	onDraw  func(DrawEvent)
	onChat  func(ChatEvent)
	onRole  func(RoleEvent)
	onWin   func(WinEvent)
	onReset func()
	onError func(error)
}

func (d *Dispatcher) SetOnDraw(fn func(DrawEvent)) { d.onDraw = fn }
func (d *Dispatcher) SetOnChat(fn func(ChatEvent)) { d.onChat = fn }
func (d *Dispatcher) SetOnRole(fn func(RoleEvent)) { d.onRole = fn }
func (d *Dispatcher) SetOnWin(fn func(WinEvent))   { d.onWin = fn }
func (d *Dispatcher) SetOnReset(fn func())         { d.onReset = fn }
func (d *Dispatcher) SetOnError(fn func(error))    { d.onError = fn }

// Dispatch decodes one raw frame and invokes the owning callback.
func (d *Dispatcher) Dispatch(raw json.RawMessage) {
	f, err := decodeFrame(raw)
	if err != nil {
		d.log().Warn("dropping undecodable frame", map[string]any{"error": err.Error()})
		return
	}

	switch f.Type {
	case frameDraw:
		if f.X == nil || f.Y == nil {
			d.drop(f.Type)
			return
		}
		if d.onDraw != nil {
			d.onDraw(DrawEvent{X: *f.X, Y: *f.Y})
		}
	case frameChat:
		if f.Message == nil {
			d.drop(f.Type)
			return
		}
		if d.onChat != nil {
			d.onChat(ChatEvent{Message: *f.Message})
		}
	case frameRole:
		if f.IsDrawer == nil {
			d.drop(f.Type)
			return
		}
		ev := RoleEvent{IsDrawer: *f.IsDrawer}
		if ev.IsDrawer {
			// The authority never sends the word to a guesser.
			if f.Word == nil {
				d.drop(f.Type)
				return
			}
			ev.Word = *f.Word
		}
		if d.onRole != nil {
			d.onRole(ev)
		}
	case frameWin:
		if f.Name == nil {
			d.drop(f.Type)
			return
		}
		if d.onWin != nil {
			d.onWin(WinEvent{Name: *f.Name})
		}
	case frameReset:
		if d.onReset != nil {
			d.onReset()
		}
	case frameError:
		if f.Message == nil {
			d.drop(f.Type)
			return
		}
		if d.onError != nil {
			d.onError(FromServerError(*f.Message))
		}
	default:
		d.log().Warn("dropping unhandled frame", map[string]any{"type": f.Type})
	}
}

func (d *Dispatcher) drop(frameType string) {
	d.log().Warn("dropping frame with missing required field", map[string]any{"type": frameType})
}

func (d *Dispatcher) log() Logger {
	if d.logger == nil {
		return noopLogger{}
	}
	return d.logger
}
