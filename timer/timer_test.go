package timer

import "testing"

func TestOneShotFiresOnce(t *testing.T) {
	m := New()
	fired := 0
	m.OneShot(100, func(now int64) { fired++ })
	m.Advance(50)
	if fired != 0 {
		t.Fatalf("fired early")
	}
	m.Advance(50)
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
	m.Advance(1000)
	if fired != 1 {
		t.Fatalf("one-shot refired")
	}
}

func TestCyclicReschedules(t *testing.T) {
	m := New()
	fired := 0
	m.Cyclic(10, func(now int64) { fired++ })
	m.Advance(35)
	if fired != 3 {
		t.Fatalf("fired %d times, want 3", fired)
	}
}

func TestCancelIdempotent(t *testing.T) {
	m := New()
	fired := false
	id := m.OneShot(10, func(now int64) { fired = true })
	m.Cancel(id)
	m.Cancel(id)
	m.Advance(100)
	if fired {
		t.Fatalf("canceled timer fired")
	}
}

func TestFIFOTieBreak(t *testing.T) {
	m := New()
	var order []int
	m.OneShot(10, func(now int64) { order = append(order, 1) })
	m.OneShot(10, func(now int64) { order = append(order, 2) })
	m.OneShot(10, func(now int64) { order = append(order, 3) })
	m.Advance(10)
	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestImmediateDrainsFirst(t *testing.T) {
	m := New()
	var order []string
	m.OneShot(5, func(now int64) { order = append(order, "later") })
	m.Immediate(func(now int64) { order = append(order, "now") })
	m.Advance(5)
	if len(order) != 2 || order[0] != "now" {
		t.Fatalf("order = %v", order)
	}
}

func TestSaturatingDeadline(t *testing.T) {
	m := New()
	fired := false
	m.Advance(1 << 62)
	// 2^62 + 2^62 = 2^63 overflows int64, so the deadline clamps.
	m.OneShot(1<<62, func(now int64) { fired = true })
	m.Advance(1 << 62)
	if fired {
		t.Fatalf("clamped deadline fired too early")
	}
}
