package protocol

// State is a step of the session state machine.  Both ends walk the same
// sequence; a handshake rejection jumps straight to Closed.
type State int

const (
	Connecting State = iota
	AwaitingHandshake
	Authorized
	AwaitingLength
	AwaitingMessage
	AwaitingKey
	Processing
	ResponseSent
	Closed
)

var stateNames = [...]string{
	Connecting:        "connecting",
	AwaitingHandshake: "awaiting-handshake",
	Authorized:        "authorized",
	AwaitingLength:    "awaiting-length",
	AwaitingMessage:   "awaiting-message",
	AwaitingKey:       "awaiting-key",
	Processing:        "processing",
	ResponseSent:      "response-sent",
	Closed:            "closed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "invalid"
	}
	return stateNames[s]
}

// Next returns the state that follows s on the success path.  Closed is
// its own successor.
func (s State) Next() State {
	if s >= Closed {
		return Closed
	}
	return s + 1
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool { return s == Closed }

// CanTransition reports whether a session in state s may move to next.
// Every state may close; otherwise only the immediate successor is legal.
func (s State) CanTransition(next State) bool {
	if s.Terminal() {
		return false
	}
	return next == Closed || next == s.Next()
}
