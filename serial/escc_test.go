package serial

import "testing"

func TestRegisterPointerSelect(t *testing.T) {
	c := NewChannel("A")
	c.WriteControl(0x04) // select WR4
	c.WriteControl(0x44) // write WR4 = 0x44
	if c.wr[WR4] != 0x44 {
		t.Fatalf("WR4 = %#x, want 0x44", c.wr[WR4])
	}
}

func TestRxIRQOnFirstByte(t *testing.T) {
	c := NewChannel("A")
	irqs := 0
	c.OnIRQ = func() { irqs++ }
	c.PushRx([]byte{0x41})
	c.PushRx([]byte{0x42}) // FIFO already nonempty, no edge
	if irqs != 1 {
		t.Fatalf("irqs = %d, want 1", irqs)
	}
	if b := c.ReadData(); b != 0x41 {
		t.Fatalf("ReadData = %#x, want 0x41", b)
	}
}

func TestTxDrain(t *testing.T) {
	c := NewChannel("A")
	c.WriteData('h')
	c.WriteData('i')
	out := c.TxBytes()
	if string(out) != "hi" {
		t.Fatalf("TxBytes = %q, want %q", out, "hi")
	}
	if len(c.TxBytes()) != 0 {
		t.Fatalf("second drain should be empty")
	}
}

func TestDBDMASinkSource(t *testing.T) {
	c := NewChannel("A")
	n, _ := c.PushData([]byte("abc"))
	if n != 3 || string(c.TxBytes()) != "abc" {
		t.Fatalf("PushData did not forward to tx buffer")
	}
	c.PushRx([]byte("xyz"))
	buf := make([]byte, 2)
	n, _ = c.PullData(buf)
	if n != 2 || string(buf) != "xy" {
		t.Fatalf("PullData = %q n=%d", buf, n)
	}
}
