package via

import (
	"testing"

	"github.com/dingusdev/dingusppc-sub001/timer"
)

func TestT1OneShotFires(t *testing.T) {
	tm := timer.New()
	tm.SetDeterministic(true)
	v := New(tm)
	v.WriteReg(RegT1CL, 0x10)
	v.WriteReg(RegT1CH, 0x00) // T1C=0x10, arms at 16us

	fired := 0
	v.OnIRQ = func(level int) {
		if level == 1 {
			fired++
		}
	}
	v.WriteReg(RegIER, 0x80|ifrT1)

	tm.Advance(16 * 1000)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

// Scenario 5: Cuda GET_REAL_TIME deterministic response.
func TestCudaGetRealTime(t *testing.T) {
	tm := timer.New()
	tm.SetDeterministic(true)
	v := New(tm)
	c := NewCuda(v, tm)

	var got []byte
	c.OnReply = func(pkt []byte) { got = pkt }
	c.Send([]byte{PktPseudo, PseudoReadDate})

	tm.Advance(71000)

	want := []byte{PktPseudo, 0x00, PseudoReadDate, 0xBB, 0x1B, 0x79, 0xE4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCudaPRAMRoundTrip(t *testing.T) {
	c := NewCuda(New(nil), nil)
	c.OnReply = func([]byte) {}
	c.Send([]byte{PktPseudo, PseudoWriteRAM, 0x10, 0x42})
	var got []byte
	c.OnReply = func(pkt []byte) { got = pkt }
	c.Send([]byte{PktPseudo, PseudoReadRAM, 0x10})
	if len(got) != 4 || got[3] != 0x42 {
		t.Fatalf("PRAM read got %v, want byte 0x42 at index 3", got)
	}
}

func TestADBKeyboardPoll(t *testing.T) {
	c := NewCuda(New(nil), nil)
	kbd := NewKeyboard(2)
	c.AttachDevice(kbd)
	kbd.KeyEvent(0x35, true) // escape key down

	var got []byte
	c.OnReply = func(pkt []byte) { got = pkt }
	c.Send([]byte{PktAdb, 0x2C}) // addr=2, Talk reg0 (op=0xC)

	if len(got) != 4 || got[2] != 0x35 {
		t.Fatalf("got %v, want keycode 0x35 at index 2", got)
	}
}
