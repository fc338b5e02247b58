package floppy

import "testing"

func TestPullDataCountdownIRQ(t *testing.T) {
	c := New()
	irqs := 0
	c.OnIRQ = func() { irqs++ }
	c.StartRead([]byte{1, 2, 3, 4})

	buf := make([]byte, 2)
	n, _ := c.PullData(buf)
	if n != 2 || irqs != 0 {
		t.Fatalf("after first pull: n=%d irqs=%d, want 2/0", n, irqs)
	}
	n, _ = c.PullData(buf)
	if n != 2 || irqs != 1 {
		t.Fatalf("after second pull: n=%d irqs=%d, want 2/1", n, irqs)
	}
	if c.ReadReg(RegInterrupt)&IntTransferDone == 0 {
		t.Fatalf("TransferDone bit not set")
	}
}

func TestPushDataSignalsDone(t *testing.T) {
	c := New()
	irqs := 0
	c.OnIRQ = func() { irqs++ }
	n, _ := c.PushData([]byte{0xAA, 0xBB})
	if n != 2 || irqs != 1 {
		t.Fatalf("n=%d irqs=%d, want 2/1", n, irqs)
	}
}
