package via

// Keyboard and Mouse are minimal ADB device shapes (spec section 4
// supplemented features): a single pending-report queue drained by
// Cuda's Talk-register poll.
type Keyboard struct {
	Addr    int
	pending [][]byte
}

func NewKeyboard(addr int) *Keyboard { return &Keyboard{Addr: addr} }

func (k *Keyboard) Address() int { return k.Addr }

// KeyEvent queues a two-byte key-down/up report (ADB register 0
// format: low 7 bits keycode, bit 7 clear on down, set on up).
func (k *Keyboard) KeyEvent(keycode uint8, down bool) {
	b := keycode & 0x7F
	if !down {
		b |= 0x80
	}
	k.pending = append(k.pending, []byte{b, 0xFF})
}

func (k *Keyboard) Poll() ([]byte, bool) {
	if len(k.pending) == 0 {
		return nil, false
	}
	d := k.pending[0]
	k.pending = k.pending[1:]
	return d, true
}

type Mouse struct {
	Addr    int
	pending [][]byte
}

func NewMouse(addr int) *Mouse { return &Mouse{Addr: addr} }

func (m *Mouse) Address() int { return m.Addr }

// MoveEvent queues a relative-motion report: button bit7, 7-bit
// signed deltas for Y then X, matching the standard ADB mouse format.
func (m *Mouse) MoveEvent(dx, dy int8, buttonDown bool) {
	b0 := uint8(dy) & 0x7F
	b1 := uint8(dx) & 0x7F
	if !buttonDown {
		b0 |= 0x80
	}
	m.pending = append(m.pending, []byte{b0, b1})
}

func (m *Mouse) Poll() ([]byte, bool) {
	if len(m.pending) == 0 {
		return nil, false
	}
	d := m.pending[0]
	m.pending = m.pending[1:]
	return d, true
}
