//go:build darwin

package platform

// DarwinAPI implements API for macOS, where apps outlive their last window
type DarwinAPI struct{}

// NewDarwinAPI creates a new macOS API instance
func NewDarwinAPI() *DarwinAPI {
	return &DarwinAPI{}
}

// Current returns the API for the running platform
func Current() API {
	return NewDarwinAPI()
}

func (d *DarwinAPI) Convention() Convention {
	return ConventionKeepAlive
}

// PrepareActivation is a no-op: AppKit brings the app forward on dock click
func (d *DarwinAPI) PrepareActivation() error {
	return nil
}
