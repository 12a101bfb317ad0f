//go:build !windows

package hook

import "log/slog"

// Hook is a stub on non-Windows platforms.
type Hook struct{}

// NewHook returns the stub hook.
func NewHook(gateway *Gateway, log *slog.Logger) *Hook {
	return &Hook{}
}

// Start reports that interception requires Windows.
func (h *Hook) Start() error {
	return ErrUnsupported
}

// Stop is a no-op.
func (h *Hook) Stop() {}
