package hook

import (
	"testing"

	"restrokey/internal/layout"
	"restrokey/internal/settings"
	"restrokey/internal/translit"
)

type fakeQueue struct {
	sent []translit.Replacement
}

func (q *fakeQueue) Enqueue(r translit.Replacement) bool {
	q.sent = append(q.sent, r)
	return true
}

func newTestGateway(t *testing.T) (*Gateway, *settings.State, *fakeQueue) {
	t.Helper()
	state := settings.New()
	engine := translit.NewEngine(layout.Builtin(), 0)
	q := &fakeQueue{}
	return NewGateway(state, engine, q, nil), state, q
}

func down(vk uint16) Event { return Event{VK: vk, Down: true} }
func up(vk uint16) Event   { return Event{VK: vk, Down: false} }

func TestInjectedEventsPassThrough(t *testing.T) {
	g, _, q := newTestGateway(t)

	// Synthetic events must not reach the engine, or our own
	// backspaces would corrupt the pending cluster.
	for _, ev := range []Event{
		{VK: 'K', Down: true, Injected: true},
		{VK: vkBack, Down: true, Injected: true},
		{VK: vkSpace, Down: true, Injected: true},
	} {
		if v := g.Handle(ev); v != Propagate {
			t.Errorf("injected %#x: verdict = %v, want Propagate", ev.VK, v)
		}
	}
	if len(q.sent) != 0 {
		t.Errorf("injected events produced %d replacements", len(q.sent))
	}
}

func TestLetterProducesReplacement(t *testing.T) {
	g, _, q := newTestGateway(t)

	if v := g.Handle(down('K')); v != Propagate {
		t.Fatalf("letter verdict = %v, want Propagate", v)
	}
	if len(q.sent) != 1 || q.sent[0].Text != "ক" || q.sent[0].Erase != 1 {
		t.Fatalf("got %+v, want single {ক 1}", q.sent)
	}

	// Inherent vowel elision right after the consonant.
	g.Handle(down('A'))
	if len(q.sent) != 2 || q.sent[1].Text != "" || q.sent[1].Erase != 1 {
		t.Fatalf("got %+v, want trailing elision {  1}", q.sent)
	}
}

func TestDigitProducesReplacement(t *testing.T) {
	g, _, q := newTestGateway(t)

	g.Handle(down('0'))
	if len(q.sent) != 1 || q.sent[0].Text != "০" {
		t.Fatalf("got %+v, want Bengali zero", q.sent)
	}
}

func TestHotkeyTogglesScript(t *testing.T) {
	g, state, q := newTestGateway(t)

	g.Handle(down(vkLControl))
	if v := g.Handle(down(vkSpace)); v != Swallow {
		t.Fatalf("Ctrl+Space verdict = %v, want Swallow", v)
	}
	if got := state.Snapshot().ActiveScript; got != settings.Latin {
		t.Fatalf("ActiveScript = %v, want Latin", got)
	}

	// Toggle back while Ctrl is still held.
	if v := g.Handle(down(vkSpace)); v != Swallow {
		t.Fatal("second Ctrl+Space not swallowed")
	}
	if got := state.Snapshot().ActiveScript; got != settings.Bengali {
		t.Fatalf("ActiveScript = %v, want Bengali", got)
	}

	g.Handle(up(vkLControl))
	if v := g.Handle(down(vkSpace)); v != Propagate {
		t.Fatalf("bare Space verdict = %v, want Propagate", v)
	}
	if len(q.sent) != 0 {
		t.Errorf("hotkey traffic produced %d replacements", len(q.sent))
	}
}

func TestHotkeyDisabled(t *testing.T) {
	g, state, _ := newTestGateway(t)
	state.SetHotkeyEnabled(false)

	g.Handle(down(vkRControl))
	if v := g.Handle(down(vkSpace)); v != Propagate {
		t.Fatalf("verdict = %v, want Propagate with hotkey disabled", v)
	}
	if got := state.Snapshot().ActiveScript; got != settings.Bengali {
		t.Fatalf("script toggled despite disabled hotkey: %v", got)
	}
}

func TestDisabledKeyboardIsInert(t *testing.T) {
	g, state, q := newTestGateway(t)
	state.SetEnabled(false)

	g.Handle(down(vkLControl))
	if v := g.Handle(down(vkSpace)); v != Propagate {
		t.Fatal("disabled keyboard swallowed the hotkey")
	}
	g.Handle(up(vkLControl))
	g.Handle(down('K'))
	if len(q.sent) != 0 {
		t.Errorf("disabled keyboard produced %d replacements", len(q.sent))
	}
}

func TestLatinScriptPassesLettersThrough(t *testing.T) {
	g, state, q := newTestGateway(t)
	state.SetActiveScript(settings.Latin)

	for _, vk := range []uint16{'H', 'E', 'L', 'L', 'O', '5'} {
		if v := g.Handle(down(vk)); v != Propagate {
			t.Fatalf("vk %#x verdict = %v, want Propagate", vk, v)
		}
	}
	if len(q.sent) != 0 {
		t.Errorf("Latin script produced %d replacements", len(q.sent))
	}
}

func TestInterceptAllDisabled(t *testing.T) {
	g, state, q := newTestGateway(t)
	state.SetInterceptAll(false)

	g.Handle(down('K'))
	if len(q.sent) != 0 {
		t.Errorf("interception off produced %d replacements", len(q.sent))
	}
}

func TestUnrelatedKeyEndsCluster(t *testing.T) {
	g, _, q := newTestGateway(t)

	g.Handle(down('K'))
	// Enter is a word boundary: the following vowel must start a
	// fresh word, not attach to the consonant.
	g.Handle(down(0x0D))
	g.Handle(down('A'))

	last := q.sent[len(q.sent)-1]
	if last.Text != "অ" || last.Erase != 1 {
		t.Fatalf("after boundary got %+v, want word-initial {অ 1}", last)
	}
}

func TestModifiersDoNotEndCluster(t *testing.T) {
	g, _, q := newTestGateway(t)

	g.Handle(down('K'))
	g.Handle(down(vkLShift))
	g.Handle(up(vkLShift))
	g.Handle(down('A'))

	last := q.sent[len(q.sent)-1]
	if last.Text != "" || last.Erase != 1 {
		t.Fatalf("after shift got %+v, want elision {  1}", last)
	}
}

func TestBackspaceShrinksCluster(t *testing.T) {
	g, _, q := newTestGateway(t)

	g.Handle(down('K'))
	if v := g.Handle(down(vkBack)); v != Propagate {
		t.Fatal("backspace not propagated")
	}
	// The erased consonant is gone, so the vowel is word-initial.
	g.Handle(down('A'))

	last := q.sent[len(q.sent)-1]
	if last.Text != "অ" {
		t.Fatalf("after backspace got %+v, want word-initial অ", last)
	}
}

func TestKeyReleasesAreIgnored(t *testing.T) {
	g, _, q := newTestGateway(t)

	g.Handle(down('K'))
	n := len(q.sent)
	g.Handle(up('K'))
	g.Handle(up(vkSpace))
	g.Handle(up(0x0D))
	if len(q.sent) != n {
		t.Errorf("releases produced replacements: %d -> %d", n, len(q.sent))
	}
}

func TestFoldKey(t *testing.T) {
	cases := []struct {
		vk   uint16
		want byte
		ok   bool
	}{
		{'A', 'a', true},
		{'Z', 'z', true},
		{'0', '0', true},
		{'9', '9', true},
		{vkSpace, 0, false},
		{vkBack, 0, false},
		{0xBE, 0, false}, // OEM period
	}
	for _, c := range cases {
		got, ok := foldKey(c.vk)
		if got != c.want || ok != c.ok {
			t.Errorf("foldKey(%#x) = %q, %v; want %q, %v", c.vk, got, ok, c.want, c.ok)
		}
	}
}
