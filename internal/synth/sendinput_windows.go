//go:build windows

package synth

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard = 1

	keyeventfKeyUp   = 0x0002
	keyeventfUnicode = 0x0004

	vkBack = 0x08
)

// keybdInput mirrors KEYBDINPUT.
type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// input mirrors INPUT for keyboard events. The trailing pad keeps the
// struct at the size of the full union (MOUSEINPUT is the largest
// member).
type input struct {
	inputType uint32
	ki        keybdInput
	_         [8]byte
}

// sendInputInjector injects events with SendInput, tagged through
// dwExtraInfo.
type sendInputInjector struct{}

// NewInjector returns the SendInput-backed injector.
func NewInjector() (Injector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("synth: SendInput unavailable: %w", err)
	}
	return &sendInputInjector{}, nil
}

func (sendInputInjector) PressBackspace() error {
	pair := [2]input{
		{inputType: inputKeyboard, ki: keybdInput{wVk: vkBack, dwExtraInfo: InjectedTag}},
		{inputType: inputKeyboard, ki: keybdInput{wVk: vkBack, dwFlags: keyeventfKeyUp, dwExtraInfo: InjectedTag}},
	}
	return send(pair[:])
}

func (sendInputInjector) PressUnicode(r rune) error {
	// KEYEVENTF_UNICODE carries the codepoint in wScan; supplementary
	// planes would need surrogate pairs, but Bengali is in the BMP.
	scan := uint16(r)
	pair := [2]input{
		{inputType: inputKeyboard, ki: keybdInput{wScan: scan, dwFlags: keyeventfUnicode, dwExtraInfo: InjectedTag}},
		{inputType: inputKeyboard, ki: keybdInput{wScan: scan, dwFlags: keyeventfUnicode | keyeventfKeyUp, dwExtraInfo: InjectedTag}},
	}
	return send(pair[:])
}

func send(events []input) error {
	n, _, err := procSendInput.Call(
		uintptr(len(events)),
		uintptr(unsafe.Pointer(&events[0])),
		unsafe.Sizeof(events[0]),
	)
	if int(n) != len(events) {
		return fmt.Errorf("synth: SendInput sent %d of %d events: %w", n, len(events), err)
	}
	return nil
}
