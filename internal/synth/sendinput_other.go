//go:build !windows

package synth

// NewInjector reports that synthetic input requires Windows.
func NewInjector() (Injector, error) {
	return nil, ErrUnsupported
}
