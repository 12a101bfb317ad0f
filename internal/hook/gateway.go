// Package hook owns the system-wide keyboard interception pipeline:
// the low-level hook registration, the per-event gateway decision, and
// the Ctrl+Space script toggle.
//
// The gateway itself is platform-independent and synchronous; the
// Windows hook feeds it one event at a time from the hook thread. It
// must stay fast and never block, or the OS tears the hook down.
package hook

import (
	"errors"
	"log/slog"

	"restrokey/internal/settings"
	"restrokey/internal/translit"
)

// ErrUnsupported is returned by Start when system-wide keyboard
// interception is not available on this platform.
var ErrUnsupported = errors.New("hook: keyboard interception not supported on this platform")

// Verdict is the gateway's answer for one event. Exactly one verdict
// is produced per event.
type Verdict int

const (
	// Propagate passes the event on to the focused application.
	Propagate Verdict = iota
	// Swallow suppresses the event entirely.
	Swallow
)

// Event is one raw keyboard event as seen by the low-level hook.
type Event struct {
	// VK is the Windows virtual key code.
	VK uint16
	// Down is true for key-press transitions, false for releases.
	Down bool
	// Injected marks synthetic events, ours or anyone else's.
	Injected bool
}

// Virtual key codes the gateway cares about.
const (
	vkBack     = 0x08
	vkShift    = 0x10
	vkControl  = 0x11
	vkMenu     = 0x12
	vkCapital  = 0x14
	vkSpace    = 0x20
	vkLWin     = 0x5B
	vkRWin     = 0x5C
	vkLShift   = 0xA0
	vkRShift   = 0xA1
	vkLControl = 0xA2
	vkRControl = 0xA3
	vkLMenu    = 0xA4
	vkRMenu    = 0xA5
)

// queue is the synthesizer surface the gateway needs.
type queue interface {
	Enqueue(translit.Replacement) bool
}

// Gateway routes every genuine keyboard event: modifier bookkeeping,
// the script hotkey, then transliteration.
type Gateway struct {
	state  *settings.State
	engine *translit.Engine
	synth  queue
	mode   *ModeController
	log    *slog.Logger
}

// NewGateway wires the gateway to the shared state, the engine and
// the synthesizer queue.
func NewGateway(state *settings.State, engine *translit.Engine, synth queue, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		state:  state,
		engine: engine,
		synth:  synth,
		mode:   NewModeController(),
		log:    log,
	}
}

// Mode exposes the modifier controller, mainly for tests.
func (g *Gateway) Mode() *ModeController {
	return g.mode
}

// Handle decides one event. The order is fixed: injected events short
// circuit before anything can observe them, Backspace bookkeeping and
// modifier tracking run even while the keyboard is disabled, and the
// hotkey is checked before transliteration ever sees the Space.
func (g *Gateway) Handle(ev Event) Verdict {
	// Our own synthetic events, and anyone else's. Touch nothing.
	if ev.Injected {
		return Propagate
	}

	// The user erased a character; keep the pending cluster in step.
	if ev.Down && ev.VK == vkBack {
		g.engine.Pop()
		return Propagate
	}

	if isControlKey(ev.VK) {
		g.mode.SetCtrl(ev.Down)
		return Propagate
	}

	// Releases carry no further meaning.
	if !ev.Down {
		return Propagate
	}

	snap := g.state.Snapshot()
	if !snap.Enabled {
		return Propagate
	}

	// Ctrl+Space flips the script. Swallowing the Space keeps the
	// toggle from also typing into the focused application.
	if snap.HotkeyEnabled && ev.VK == vkSpace && g.mode.CtrlHeld() {
		script := g.state.ToggleScript()
		g.log.Info("script toggled", "active", script.String())
		return Swallow
	}

	if snap.ActiveScript == settings.Bengali && snap.InterceptAll {
		if c, ok := foldKey(ev.VK); ok {
			if r := g.engine.Process(c); r != nil {
				g.synth.Enqueue(*r)
			}
			// The physical key lands first either way; erase counts
			// in the replacement include it.
			return Propagate
		}
	}

	// Anything else that is not a bare modifier ends the cluster, so
	// matches never join across spaces or punctuation.
	if !isModifierKey(ev.VK) {
		g.engine.Clear()
	}
	return Propagate
}

// foldKey case-folds a letter or digit key to the character the
// engine matches on.
func foldKey(vk uint16) (byte, bool) {
	switch {
	case vk >= 'A' && vk <= 'Z':
		return byte(vk-'A') + 'a', true
	case vk >= '0' && vk <= '9':
		return byte(vk), true
	}
	return 0, false
}

// isControlKey covers the generic and the left/right specific Ctrl
// codes; the low-level hook reports the specific ones.
func isControlKey(vk uint16) bool {
	return vk == vkControl || vk == vkLControl || vk == vkRControl
}

func isModifierKey(vk uint16) bool {
	switch vk {
	case vkShift, vkLShift, vkRShift,
		vkControl, vkLControl, vkRControl,
		vkMenu, vkLMenu, vkRMenu,
		vkLWin, vkRWin, vkCapital:
		return true
	}
	return false
}
