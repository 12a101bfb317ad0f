// Package settings holds the process-wide keyboard state shared
// between the hook callback and the settings panel.
package settings

import "sync"

// Script is the active output script.
type Script int

const (
	// Bengali routes letters and digits through the transliteration
	// engine.
	Bengali Script = iota
	// Latin passes everything through untouched.
	Latin
)

// String returns the display name of the script.
func (s Script) String() string {
	if s == Bengali {
		return "bengali"
	}
	return "latin"
}

// Snapshot is a point-in-time copy of the shared state. The hook takes
// one snapshot per event so no lock is held while the event is
// processed.
type Snapshot struct {
	Enabled       bool
	ActiveScript  Script
	HotkeyEnabled bool
	InterceptAll  bool
}

// State is the mutable singleton written by the panel and read by the
// hook on every keystroke. One coarse lock, held only for field
// access.
type State struct {
	mu sync.RWMutex

	enabled       bool
	activeScript  Script
	hotkeyEnabled bool
	interceptAll  bool

	// Panel-only preferences; the core never reads these.
	fontSize        float32
	darkTheme       bool
	showSuggestions bool

	notify func()
}

// New returns shared state with the interception pipeline active and
// Bengali selected, matching a freshly started keyboard.
func New() *State {
	return &State{
		enabled:         true,
		activeScript:    Bengali,
		hotkeyEnabled:   true,
		interceptAll:    true,
		fontSize:        14,
		showSuggestions: true,
	}
}

// Snapshot returns a consistent copy of the core flags.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Enabled:       s.enabled,
		ActiveScript:  s.activeScript,
		HotkeyEnabled: s.hotkeyEnabled,
		InterceptAll:  s.interceptAll,
	}
}

// SetNotify registers a callback fired after every core flag change.
// The panel uses it to request a redraw when the hotkey flips the
// script from the hook thread. The callback must not call back into
// State setters.
func (s *State) SetNotify(fn func()) {
	s.mu.Lock()
	s.notify = fn
	s.mu.Unlock()
}

func (s *State) notifyChanged() {
	s.mu.RLock()
	fn := s.notify
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// ToggleScript flips between Bengali and Latin and returns the new
// script. Used by the hotkey controller.
func (s *State) ToggleScript() Script {
	s.mu.Lock()
	if s.activeScript == Bengali {
		s.activeScript = Latin
	} else {
		s.activeScript = Bengali
	}
	sc := s.activeScript
	s.mu.Unlock()
	s.notifyChanged()
	return sc
}

// SetEnabled turns the whole keyboard on or off.
func (s *State) SetEnabled(v bool) {
	s.mu.Lock()
	s.enabled = v
	s.mu.Unlock()
	s.notifyChanged()
}

// Enabled reports whether the keyboard is active.
func (s *State) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetActiveScript selects the output script directly (panel radio
// buttons; the hotkey uses ToggleScript).
func (s *State) SetActiveScript(sc Script) {
	s.mu.Lock()
	s.activeScript = sc
	s.mu.Unlock()
	s.notifyChanged()
}

// ActiveScript returns the current output script.
func (s *State) ActiveScript() Script {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeScript
}

// SetHotkeyEnabled controls the Ctrl+Space toggle.
func (s *State) SetHotkeyEnabled(v bool) {
	s.mu.Lock()
	s.hotkeyEnabled = v
	s.mu.Unlock()
}

// HotkeyEnabled reports whether Ctrl+Space switches scripts.
func (s *State) HotkeyEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hotkeyEnabled
}

// SetInterceptAll controls whether letters and digits are routed
// through the engine at all.
func (s *State) SetInterceptAll(v bool) {
	s.mu.Lock()
	s.interceptAll = v
	s.mu.Unlock()
}

// InterceptAll reports whether interception is active.
func (s *State) InterceptAll() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interceptAll
}

// FontSize returns the panel's preview font size.
func (s *State) FontSize() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fontSize
}

// SetFontSize sets the panel's preview font size.
func (s *State) SetFontSize(v float32) {
	s.mu.Lock()
	s.fontSize = v
	s.mu.Unlock()
}

// DarkTheme reports the panel theme preference.
func (s *State) DarkTheme() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkTheme
}

// SetDarkTheme sets the panel theme preference.
func (s *State) SetDarkTheme(v bool) {
	s.mu.Lock()
	s.darkTheme = v
	s.mu.Unlock()
}

// ShowSuggestions reports whether the panel shows the suggestions
// column.
func (s *State) ShowSuggestions() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showSuggestions
}

// SetShowSuggestions controls the suggestions column.
func (s *State) SetShowSuggestions(v bool) {
	s.mu.Lock()
	s.showSuggestions = v
	s.mu.Unlock()
}
