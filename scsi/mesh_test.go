package scsi

import "testing"

type fakeTarget struct {
	id int
}

func (f *fakeTarget) ID() int { return f.id }
func (f *fakeTarget) Execute(cdb []byte) ([]byte, uint8) {
	if len(cdb) == 0 {
		return nil, 0x02
	}
	return []byte{0xDE, 0xAD}, 0x00
}

func TestIssueCommandRoundTrip(t *testing.T) {
	c := New()
	c.AttachTarget(&fakeTarget{id: 0})
	c.WriteReg(RegDstID, 0)
	c.WriteFIFO(0x12)
	c.WriteFIFO(0x00)

	irqs := 0
	c.OnIRQ = func() { irqs++ }
	c.IssueCommand()

	if irqs != 1 {
		t.Fatalf("irqs = %d, want 1", irqs)
	}
	if c.ReadReg(RegIntStatus)&IntCmdDone == 0 {
		t.Fatalf("CmdDone not set")
	}
	buf := make([]byte, 2)
	n, status := c.PullData(buf)
	if n != 2 || buf[0] != 0xDE || status != 0 {
		t.Fatalf("got n=%d buf=%v status=%d", n, buf, status)
	}
}

func TestIssueCommandUnknownTarget(t *testing.T) {
	c := New()
	c.WriteReg(RegDstID, 7)
	c.IssueCommand()
	if c.ReadReg(RegIntStatus)&IntError == 0 {
		t.Fatalf("expected error bit for unknown target")
	}
}
