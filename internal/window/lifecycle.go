package window

import (
	"fmt"
	"sync"

	"framekit/internal/platform"
)

// State of the single application window
type State int

const (
	StateNotStarted State = iota
	StateCreated
	StateClosed
	StateRecreated
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateCreated:
		return "created"
	case StateClosed:
		return "closed"
	case StateRecreated:
		return "recreated"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// HideOnClose reports whether closing the window should only hide it.
// On keep-alive platforms the runtime hides the window itself and the host
// is not told; only an explicit quit reaches OnBeforeClose.
func HideOnClose(conv platform.Convention) bool {
	return conv == platform.ConventionKeepAlive
}

// Lifecycle tracks the window from creation to process exit
type Lifecycle struct {
	mu    sync.Mutex
	conv  platform.Convention
	state State
}

func NewLifecycle(conv platform.Convention) *Lifecycle {
	return &Lifecycle{conv: conv, state: StateNotStarted}
}

// Ready records that the runtime has created the window
func (l *Lifecycle) Ready() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateNotStarted {
		return fmt.Errorf("window already started, state %s", l.state)
	}
	l.state = StateCreated
	return nil
}

// CloseAll records a close request from the runtime. The close always goes
// ahead: keep-alive platforms hide the window in the runtime, so a request
// that reaches the host there is a quit.
func (l *Lifecycle) CloseAll() (prevent bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateTerminated {
		l.state = StateClosed
	}
	return false
}

// Activate handles the app being launched again while running. It returns
// true when the window may be hidden and has to be shown again. Hides are
// not reported on keep-alive platforms, so there every activation qualifies.
func (l *Lifecycle) Activate() (recreate bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateCreated, StateRecreated:
		if !HideOnClose(l.conv) {
			return false
		}
	default:
		return false
	}
	l.state = StateRecreated
	return true
}

func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Lifecycle) String() string {
	return "window lifecycle: " + l.State().String()
}

// Terminate records that the process is shutting down
func (l *Lifecycle) Terminate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = StateTerminated
}
