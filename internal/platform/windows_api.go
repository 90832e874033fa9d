//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// asfwAny is ASFW_ANY, (DWORD)-1
const asfwAny = 0xFFFFFFFF

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procAllowSetForegroundWindow = user32.NewProc("AllowSetForegroundWindow")
)

// WindowsAPI implements API for Windows
type WindowsAPI struct{}

// NewWindowsAPI creates a new Windows API instance
func NewWindowsAPI() *WindowsAPI {
	return &WindowsAPI{}
}

// Current returns the API for the running platform
func Current() API {
	return NewWindowsAPI()
}

func (w *WindowsAPI) Convention() Convention {
	return ConventionSingleWindowExit
}

// PrepareActivation lifts the foreground lock so the re-shown window can take focus.
// Windows otherwise flashes the taskbar button instead of activating the window.
func (w *WindowsAPI) PrepareActivation() error {
	if err := procAllowSetForegroundWindow.Find(); err != nil {
		return fmt.Errorf("AllowSetForegroundWindow unavailable: %w", err)
	}

	ret, _, callErr := procAllowSetForegroundWindow.Call(uintptr(asfwAny))
	if ret == 0 {
		return fmt.Errorf("AllowSetForegroundWindow failed: %w", callErr)
	}
	return nil
}
