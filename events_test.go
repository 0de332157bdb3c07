package canopy

import "testing"

func newTestList() *handlerList[int] {
	var id uint32
	return &handlerList[int]{nextID: &id}
}

func TestHandlerListOrder(t *testing.T) {
	l := newTestList()
	var got []string
	l.add(func(int) { got = append(got, "a") })
	l.add(func(int) { got = append(got, "b") })
	l.add(func(int) { got = append(got, "c") })
	l.emit(1)

	want := "abc"
	if s := got[0] + got[1] + got[2]; s != want {
		t.Errorf("order = %q, want %q", s, want)
	}
}

func TestHandlerListRemove(t *testing.T) {
	l := newTestList()
	var a, b int
	ha := l.add(func(v int) { a += v })
	l.add(func(v int) { b += v })

	ha.Remove()
	l.emit(5)
	if a != 0 || b != 5 {
		t.Errorf("a = %d, b = %d, want 0, 5", a, b)
	}
	ha.Remove() // second remove is a no-op
	if len(l.handlers) != 1 {
		t.Errorf("handlers = %d, want 1", len(l.handlers))
	}
}

func TestHandlerListRemoveDuringEmit(t *testing.T) {
	l := newTestList()
	calls := 0
	var hb CallbackHandle
	l.add(func(int) { hb.Remove() })
	hb = l.add(func(int) { calls++ })

	l.emit(0) // b still sees the in-flight event
	l.emit(0)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestCallbackHandleZero(t *testing.T) {
	var h CallbackHandle
	h.Remove() // should not panic
}

func TestHandlerIDsShared(t *testing.T) {
	var id uint32
	a := handlerList[int]{nextID: &id}
	b := handlerList[string]{nextID: &id}
	ha := a.add(func(int) {})
	hb := b.add(func(string) {})
	if ha.id == hb.id {
		t.Error("handles from lists sharing a counter should have distinct IDs")
	}
}

func TestManagerCloseDropsCallbacks(t *testing.T) {
	m := New(DefaultOptions())
	calls := 0
	m.OnOutlineWidthChanged(func(OutlineWidthChangedEvent) { calls++ })
	m.SetOutlineWidth(3)
	m.Close()
	m.SetOutlineWidth(4)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
