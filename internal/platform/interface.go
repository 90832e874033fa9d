package platform

// Convention describes what a desktop platform does when its last window closes
type Convention int

const (
	// ConventionSingleWindowExit terminates the process once all windows are closed
	ConventionSingleWindowExit Convention = iota
	// ConventionKeepAlive keeps the process running with zero windows until the user quits
	ConventionKeepAlive
)

func (c Convention) String() string {
	switch c {
	case ConventionKeepAlive:
		return "keep-alive"
	default:
		return "single-window-exit"
	}
}

// API defines the platform-specific window operations the host process needs
type API interface {
	// Convention reports the close-all-windows behaviour of the platform
	Convention() Convention
	// PrepareActivation runs before a hidden window is shown again on reactivation
	PrepareActivation() error
}
