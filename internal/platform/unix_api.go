//go:build !darwin && !windows

package platform

// UnixAPI implements API for Linux and the BSDs
type UnixAPI struct{}

// NewUnixAPI creates a new Unix API instance
func NewUnixAPI() *UnixAPI {
	return &UnixAPI{}
}

// Current returns the API for the running platform
func Current() API {
	return NewUnixAPI()
}

func (u *UnixAPI) Convention() Convention {
	return ConventionSingleWindowExit
}

func (u *UnixAPI) PrepareActivation() error {
	return nil
}
