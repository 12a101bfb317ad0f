//go:build windows

package hook

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"restrokey/internal/synth"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId  = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL = 13

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
	wmQuit       = 0x0012

	// LLKHF_INJECTED
	llkhfInjected = 0x10
)

// kbdLLHookStruct mirrors KBDLLHOOKSTRUCT.
type kbdLLHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// The hook procedure is a process-global callback with no closure
// argument, so the active hook is package state. Only one Hook may
// run at a time.
var (
	activeMu      sync.Mutex
	activeGateway *Gateway
	activeHandle  uintptr
)

// Hook installs a WH_KEYBOARD_LL hook and pumps its message loop on a
// dedicated OS thread, routing every event through the gateway.
type Hook struct {
	gateway *Gateway
	log     *slog.Logger

	threadID uint32
	wg       sync.WaitGroup
	started  bool
}

// NewHook wraps the gateway in a platform hook.
func NewHook(gateway *Gateway, log *slog.Logger) *Hook {
	if log == nil {
		log = slog.Default()
	}
	return &Hook{gateway: gateway, log: log}
}

// Start registers the hook and begins the message loop. Registration
// failure is returned synchronously; with no hook there is nothing to
// intercept, so callers should treat it as fatal.
func (h *Hook) Start() error {
	activeMu.Lock()
	if activeGateway != nil {
		activeMu.Unlock()
		return fmt.Errorf("hook: already installed")
	}
	activeGateway = h.gateway
	activeMu.Unlock()

	ready := make(chan error, 1)
	h.wg.Add(1)
	go h.loop(ready)

	if err := <-ready; err != nil {
		h.wg.Wait()
		activeMu.Lock()
		activeGateway = nil
		activeMu.Unlock()
		return err
	}
	h.started = true
	h.log.Info("keyboard hook installed")
	return nil
}

// loop owns the hook for its whole life. SetWindowsHookExW ties the
// hook to the registering thread's message queue, so registration,
// the GetMessageW pump and the unhook all stay on one locked thread.
func (h *Hook) loop(ready chan<- error) {
	defer h.wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tid, _, _ := procGetCurrentThreadId.Call()
	h.threadID = uint32(tid)

	cb := windows.NewCallback(hookProc)
	handle, _, err := procSetWindowsHookExW.Call(whKeyboardLL, cb, 0, 0)
	if handle == 0 {
		ready <- fmt.Errorf("hook: SetWindowsHookExW failed: %w", err)
		return
	}
	activeMu.Lock()
	activeHandle = handle
	activeMu.Unlock()
	ready <- nil

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		// 0 is WM_QUIT, ^0 is an error; both end the pump.
		if ret == 0 || int32(ret) == -1 {
			break
		}
	}

	procUnhookWindowsHookEx.Call(handle)
	activeMu.Lock()
	activeHandle = 0
	activeGateway = nil
	activeMu.Unlock()
	h.log.Info("keyboard hook removed")
}

// Stop unhooks and waits for the message loop to exit.
func (h *Hook) Stop() {
	if !h.started {
		return
	}
	h.started = false
	procPostThreadMessageW.Call(uintptr(h.threadID), wmQuit, 0, 0)
	h.wg.Wait()
}

// hookProc runs on the hook thread for every keyboard event in the
// session. It must return quickly; all it does is consult the gateway.
func hookProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) >= 0 {
		kb := (*kbdLLHookStruct)(unsafe.Pointer(lParam))

		ev := Event{
			VK:   uint16(kb.VkCode),
			Down: wParam == wmKeyDown || wParam == wmSysKeyDown,
			// Another hook ahead of us can strip LLKHF_INJECTED, so
			// our own events are also recognized by their tag.
			Injected: kb.Flags&llkhfInjected != 0 || kb.DwExtraInfo == synth.InjectedTag,
		}

		activeMu.Lock()
		g := activeGateway
		activeMu.Unlock()

		if g != nil && g.Handle(ev) == Swallow {
			return 1
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return ret
}
