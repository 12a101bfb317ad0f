package hook

import (
	"sync"
	"testing"
)

func TestModeControllerCtrl(t *testing.T) {
	m := NewModeController()
	if m.CtrlHeld() {
		t.Fatal("Ctrl held at start")
	}
	m.SetCtrl(true)
	if !m.CtrlHeld() {
		t.Fatal("Ctrl press not recorded")
	}
	m.SetCtrl(false)
	if m.CtrlHeld() {
		t.Fatal("Ctrl release not recorded")
	}
}

func TestModeControllerEitherSide(t *testing.T) {
	g, _, _ := newTestGateway(t)

	// Left and right Ctrl both count; the hook reports the specific
	// codes, not the generic one.
	for _, vk := range []uint16{vkLControl, vkRControl, vkControl} {
		g.Handle(down(vk))
		if !g.Mode().CtrlHeld() {
			t.Errorf("vk %#x press not tracked", vk)
		}
		g.Handle(up(vk))
		if g.Mode().CtrlHeld() {
			t.Errorf("vk %#x release not tracked", vk)
		}
	}
}

func TestModeControllerConcurrentReads(t *testing.T) {
	m := NewModeController()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.CtrlHeld()
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		m.SetCtrl(j%2 == 0)
	}
	wg.Wait()
}
