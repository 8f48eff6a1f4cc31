package cloudsync

// Phase is the connection phase of the cloud replica.
type Phase int

const (
	Disconnected Phase = iota
	Connecting
	Connected
	Failed
)

// State is the connection state shown to the user. Reason is set only when
// Phase is Failed.
type State struct {
	Phase  Phase
	Reason string
}

// Error returns a Failed state carrying reason.
func Error(reason string) State {
	return State{Phase: Failed, Reason: reason}
}

// Status returns the short status label for headers and the sync screen.
func (s State) Status() string {
	switch s.Phase {
	case Connecting:
		return "… Connecting"
	case Connected:
		return "✓ Synced"
	case Failed:
		return "⚠️ Sync Error"
	}
	return "⚪ Offline"
}

// Offline reports whether no remote is reachable.
func (s State) Offline() bool {
	return s.Phase == Disconnected
}

func (s State) String() string {
	if s.Phase == Failed {
		return s.Status() + ": " + s.Reason
	}
	return s.Status()
}
