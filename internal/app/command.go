package app

// Command is an input that does not come from the preview window, such as
// a tray click.
type Command int

const (
	CommandMute Command = iota + 1
	CommandUnmute
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandMute:
		return "mute"
	case CommandUnmute:
		return "unmute"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Keys polled from the preview window.
const (
	KeyQuit   = 'q'
	KeyMute   = 'm'
	KeyUnmute = 'u'
)

// commandForKey maps a polled key code to a Command. The second result is
// false for keys with no binding, including -1 (no key pressed).
func commandForKey(key int) (Command, bool) {
	if key < 0 {
		return 0, false
	}
	switch key & 0xFF {
	case KeyQuit:
		return CommandQuit, true
	case KeyMute:
		return CommandMute, true
	case KeyUnmute:
		return CommandUnmute, true
	}
	return 0, false
}
