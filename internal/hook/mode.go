package hook

import "sync"

// ModeController tracks modifier state across hook events. The hook
// callback is sequential, but the UI reads the state from its own
// goroutine, so access is guarded.
type ModeController struct {
	mu       sync.RWMutex
	ctrlHeld bool
}

// NewModeController returns a controller with no modifiers held.
func NewModeController() *ModeController {
	return &ModeController{}
}

// SetCtrl records a Ctrl press or release.
func (m *ModeController) SetCtrl(down bool) {
	m.mu.Lock()
	m.ctrlHeld = down
	m.mu.Unlock()
}

// CtrlHeld reports whether Ctrl is currently held.
func (m *ModeController) CtrlHeld() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ctrlHeld
}
