package synth

import (
	"errors"
	"sync"
	"testing"
	"time"

	"restrokey/internal/translit"
)

// fakeInjector records the event sequence and can fail on demand.
type fakeInjector struct {
	mu     sync.Mutex
	events []string
	fail   bool
}

func (f *fakeInjector) PressBackspace() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("injection refused")
	}
	f.events = append(f.events, "BS")
	return nil
}

func (f *fakeInjector) PressUnicode(r rune) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("injection refused")
	}
	f.events = append(f.events, string(r))
	return nil
}

func (f *fakeInjector) sequence() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	copy(out, f.events)
	return out
}

func fastOptions() Options {
	return Options{
		EraseDelay:     time.Millisecond,
		PreInsertDelay: time.Millisecond,
		InsertDelay:    time.Millisecond,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestApplyOrdering(t *testing.T) {
	inj := &fakeInjector{}
	s := New(inj, fastOptions(), nil)
	s.Start()
	defer s.Stop()

	// Erase two Latin characters, then insert a two-codepoint
	// conjunct: strictly backspaces first, text left to right.
	if !s.Enqueue(translit.Replacement{Text: "ক্ক", Erase: 2}) {
		t.Fatal("Enqueue refused")
	}

	waitFor(t, func() bool { return len(inj.sequence()) == 5 })

	want := []string{"BS", "BS", "ক", "্", "ক"}
	got := inj.sequence()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestApplyEmptyText(t *testing.T) {
	inj := &fakeInjector{}
	s := New(inj, fastOptions(), nil)
	s.Start()
	defer s.Stop()

	// Inherent-vowel elision: one erasure, nothing inserted.
	s.Enqueue(translit.Replacement{Text: "", Erase: 1})

	waitFor(t, func() bool { return len(inj.sequence()) == 1 })
	if got := inj.sequence(); got[0] != "BS" {
		t.Fatalf("got %v, want single backspace", got)
	}
}

func TestInjectionFailureIsAbsorbed(t *testing.T) {
	inj := &fakeInjector{fail: true}
	s := New(inj, fastOptions(), nil)
	s.Start()

	s.Enqueue(translit.Replacement{Text: "অ", Erase: 1})

	// Failures are logged and dropped; the worker must stay alive
	// and process later work.
	time.Sleep(50 * time.Millisecond)
	inj.mu.Lock()
	inj.fail = false
	inj.mu.Unlock()

	s.Enqueue(translit.Replacement{Text: "ক", Erase: 0})
	waitFor(t, func() bool { return len(inj.sequence()) == 1 })
	if got := inj.sequence(); got[0] != "ক" {
		t.Fatalf("got %v, want just the recovered insertion", got)
	}
	s.Stop()
}

func TestEnqueueNeverBlocks(t *testing.T) {
	// Worker not started: the queue fills up and Enqueue must report
	// drops instead of blocking the caller.
	s := New(&fakeInjector{}, fastOptions(), nil)

	dropped := false
	for i := 0; i < 200; i++ {
		if !s.Enqueue(translit.Replacement{Text: "x", Erase: 1}) {
			dropped = true
			break
		}
	}
	if !dropped {
		t.Error("expected Enqueue to drop once the queue is full")
	}
}

func TestStopWaitsForInProgress(t *testing.T) {
	inj := &fakeInjector{}
	s := New(inj, Options{EraseDelay: 20 * time.Millisecond}, nil)
	s.Start()

	s.Enqueue(translit.Replacement{Text: "", Erase: 3})
	waitFor(t, func() bool { return len(inj.sequence()) >= 1 })

	// A replacement in progress runs to completion even across Stop.
	s.Stop()
	if got := len(inj.sequence()); got != 3 {
		t.Errorf("got %d events after Stop, want 3", got)
	}
}
