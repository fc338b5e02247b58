package ether

import "testing"

func TestSROMStationAddress(t *testing.T) {
	srom := []byte{0x08, 0x00, 0x07, 0x01, 0x02, 0x03, 0xFF}
	c := New(srom)
	want := [6]byte{0x08, 0x00, 0x07, 0x01, 0x02, 0x03}
	if c.MAC != want {
		t.Fatalf("MAC = %v, want %v", c.MAC, want)
	}
}

func TestRxQueueDrain(t *testing.T) {
	c := New(nil)
	irqs := 0
	c.OnIRQ = func() { irqs++ }
	c.QueueRxFrame([]byte{1, 2, 3})
	if irqs != 1 || c.Status&StatusRxDone == 0 {
		t.Fatalf("expected RxDone after queueing")
	}

	buf := make([]byte, 8)
	n, _ := c.PullData(buf)
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if c.Status&StatusRxDone != 0 {
		t.Fatalf("RxDone should clear once queue drains")
	}
}

func TestTxFramesRoundTrip(t *testing.T) {
	c := New(nil)
	c.PushData([]byte{0xAA, 0xBB})
	frames := c.TxFrames()
	if len(frames) != 1 || string(frames[0]) != "\xaa\xbb" {
		t.Fatalf("got %v", frames)
	}
	if len(c.TxFrames()) != 0 {
		t.Fatalf("second drain should be empty")
	}
}
