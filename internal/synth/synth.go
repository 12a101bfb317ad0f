// Package synth turns replacement instructions into synthetic key
// events: backspaces to erase the Latin characters already on screen,
// then the Bengali text as Unicode key presses.
//
// The short fixed delays between events are a protocol requirement,
// not tuning: the focused application drains its own input queue
// between our events, and without the pauses erasures and insertions
// arrive out of order. They must therefore run on the synthesizer's
// own goroutine, never inside the hook callback or under a lock.
package synth

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"restrokey/internal/translit"
)

// InjectedTag marks every synthetic event's extra-info word so the
// hook recognizes its own output even if another hook strips the
// injected flag.
const InjectedTag uintptr = 0x524B4259

// ErrUnsupported is returned when synthetic input is not available on
// this platform.
var ErrUnsupported = errors.New("synth: synthetic input not supported on this platform")

// Injector sends one synthetic press/release pair. Implementations
// must tag events with InjectedTag.
type Injector interface {
	// PressBackspace sends a backspace down/up pair.
	PressBackspace() error
	// PressUnicode sends a down/up pair for one codepoint.
	PressUnicode(r rune) error
}

// Options holds the inter-event delays.
type Options struct {
	// EraseDelay follows each synthetic backspace.
	EraseDelay time.Duration
	// PreInsertDelay separates the last erasure from the first
	// inserted codepoint.
	PreInsertDelay time.Duration
	// InsertDelay follows each injected codepoint.
	InsertDelay time.Duration
}

// DefaultOptions matches the timings the injection protocol was
// validated with.
func DefaultOptions() Options {
	return Options{
		EraseDelay:     5 * time.Millisecond,
		PreInsertDelay: 5 * time.Millisecond,
		InsertDelay:    time.Millisecond,
	}
}

// Synthesizer executes replacements serially on a dedicated
// goroutine. The hook hands instructions over through a buffered
// queue and never blocks; once a replacement starts it runs to
// completion, and failed injections are logged and skipped with no
// retry.
type Synthesizer struct {
	inj  Injector
	opts Options
	log  *slog.Logger

	queue chan translit.Replacement
	done  chan struct{}
	wg    sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a synthesizer over the given injector.
func New(inj Injector, opts Options, log *slog.Logger) *Synthesizer {
	if log == nil {
		log = slog.Default()
	}
	return &Synthesizer{
		inj:   inj,
		opts:  opts,
		log:   log,
		queue: make(chan translit.Replacement, 64),
		done:  make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (s *Synthesizer) Start() {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.run()
	})
}

// Stop stops accepting work and waits for the replacement in progress
// to finish. Queued but unstarted replacements are dropped.
func (s *Synthesizer) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

// Enqueue hands a replacement to the worker without blocking. It
// reports false when the queue is full; the replacement is then lost,
// which shows up on screen as untransliterated Latin text.
func (s *Synthesizer) Enqueue(r translit.Replacement) bool {
	select {
	case s.queue <- r:
		return true
	default:
		s.log.Warn("synthesis queue full, dropping replacement",
			"erase", r.Erase, "text", r.Text)
		return false
	}
}

func (s *Synthesizer) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case r := <-s.queue:
			s.apply(r)
		}
	}
}

// apply performs one replacement. Erasures first, oldest visible
// character last; then the text left to right.
func (s *Synthesizer) apply(r translit.Replacement) {
	for i := 0; i < r.Erase; i++ {
		if err := s.inj.PressBackspace(); err != nil {
			s.log.Warn("backspace injection failed", "error", err)
		}
		time.Sleep(s.opts.EraseDelay)
	}
	if r.Text == "" {
		return
	}
	time.Sleep(s.opts.PreInsertDelay)
	for _, c := range r.Text {
		if err := s.inj.PressUnicode(c); err != nil {
			s.log.Warn("unicode injection failed", "codepoint", c, "error", err)
		}
		time.Sleep(s.opts.InsertDelay)
	}
}
