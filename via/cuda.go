package via

import "github.com/dingusdev/dingusppc-sub001/timer"

// Cuda packet types (spec 4.7), matching original_source/viacuda.cpp.
const (
	PktAdb    = 0x00
	PktPseudo = 0x01
	PktError  = 0x05
	PktTick   = 0x06
)

// Pseudo-command subcodes used by the Mac OS toolbox to talk to Cuda
// outside the ADB protocol proper.
const (
	PseudoWarmStart      = 0x00
	PseudoStartStopAutopoll = 0x01
	PseudoReadRAM        = 0x07
	PseudoWriteRAM       = 0x08
	PseudoReadDate       = 0x03
	PseudoSetDate        = 0x09
	PseudoPowerDown      = 0x0A
	PseudoPowerupReason  = 0x19
)

// cudaRTCEpoch is the deterministic RTC instant this implementation
// pins time to: 0xBB1B79E4 seconds since 1904-01-01 (the Mac epoch),
// which is 2003-06-22 15:21:08 UTC. Host wall-clock is never
// read; callers that need live time must feed it in explicitly.
const cudaRTCEpoch uint32 = 0xBB1B79E4

// ADBDevice is a peripheral attached to Cuda's ADB bus (spec 4.7,
// supplemented keyboard/mouse shaping).
type ADBDevice interface {
	// Poll returns (data, true) if the device has a pending service
	// request reply, else (nil, false).
	Poll() ([]byte, bool)
	Address() int
}

// Cuda is the VIA-attached microcontroller handling ADB, PRAM, RTC,
// and system power pseudo-commands.
type Cuda struct {
	VIA   *VIA6522
	Timers *timer.Manager

	PRAM [256]byte
	rtc  uint32 // seconds since the Mac epoch; advanced only by ticks fed via AdvanceRTC

	devices []ADBDevice

	// in/out are the byte-at-a-time SR shift buffers.
	in      []byte
	out     []byte
	outPos  int
	treq    bool

	// OnReply delivers a completed response packet back to the host
	// (spec 4.7's "packet protocol": type byte, then payload).
	OnReply func(pkt []byte)
}

func NewCuda(v *VIA6522, timers *timer.Manager) *Cuda {
	c := &Cuda{VIA: v, Timers: timers, rtc: cudaRTCEpoch}
	if v != nil {
		v.CB1Edge = c.onCB1Edge
	}
	return c
}

func (c *Cuda) AttachDevice(d ADBDevice) { c.devices = append(c.devices, d) }

// AdvanceRTC lets a deterministic test harness move the clock forward
// without touching the host's wall clock.
func (c *Cuda) AdvanceRTC(deltaSeconds uint32) { c.rtc += deltaSeconds }

func (c *Cuda) onCB1Edge(rising bool) {
	if !rising {
		return
	}
	// A host-initiated falling-then-rising edge on CB1 signals "byte
	// ready to send"; the transfer itself happens through SR reads.
}

// Send hands a complete host-to-Cuda packet to the state machine and
// delivers the whole reply through OnReply 71us later (at once when
// Timers is nil). The reply is not paced per byte: no per-device-byte
// delay is added on top of the 71us.
func (c *Cuda) Send(pkt []byte) {
	if len(pkt) == 0 {
		return
	}
	reply := c.handlePacket(pkt)
	if reply == nil {
		return
	}
	if c.Timers != nil {
		c.Timers.OneShot(71000, func(int64) {
			if c.OnReply != nil {
				c.OnReply(reply)
			}
		})
	} else if c.OnReply != nil {
		c.OnReply(reply)
	}
}

func (c *Cuda) handlePacket(pkt []byte) []byte {
	switch pkt[0] {
	case PktPseudo:
		return c.handlePseudo(pkt[1:])
	case PktAdb:
		return c.handleADB(pkt[1:])
	default:
		return []byte{PktError, 0x01}
	}
}

func (c *Cuda) handlePseudo(body []byte) []byte {
	if len(body) == 0 {
		return []byte{PktError, 0x02}
	}
	switch body[0] {
	case PseudoReadDate:
		// Scenario 5: GET_REAL_TIME, inbuf [0x01,0x03] -> response
		// [0x01,0x00,0x03,t0..t3] with t0..t3 big-endian.
		t := c.rtc
		return []byte{PktPseudo, 0x00, body[0],
			byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	case PseudoSetDate:
		if len(body) >= 5 {
			c.rtc = uint32(body[1])<<24 | uint32(body[2])<<16 | uint32(body[3])<<8 | uint32(body[4])
		}
		return []byte{PktPseudo, 0x00, body[0]}
	case PseudoReadRAM:
		if len(body) < 2 {
			return []byte{PktError, 0x03}
		}
		addr := body[1]
		return []byte{PktPseudo, 0x00, body[0], c.PRAM[addr]}
	case PseudoWriteRAM:
		if len(body) < 3 {
			return []byte{PktError, 0x03}
		}
		c.PRAM[body[1]] = body[2]
		return []byte{PktPseudo, 0x00, body[0]}
	case PseudoStartStopAutopoll, PseudoWarmStart, PseudoPowerDown:
		return []byte{PktPseudo, 0x00, body[0]}
	case PseudoPowerupReason:
		return []byte{PktPseudo, 0x00, body[0], 0x00}
	default:
		return []byte{PktPseudo, 0x00, body[0]}
	}
}

// handleADB answers ADB Talk commands from attached devices, which is
// how keyboard/mouse reports reach the host (supplemented per spec
// section 4, keyboard/mouse shaping). Every other command (Listen,
// Flush, Reset) gets the bare [PktAdb, cmd] reply and has no effect.
func (c *Cuda) handleADB(body []byte) []byte {
	if len(body) == 0 {
		return []byte{PktError, 0x02}
	}
	cmd := body[0]
	addr := int(cmd>>4) & 0xF
	op := cmd & 0xF
	// Talk: op bits 3-2 = 0b11, reg = op&3. Every register number
	// returns the device's pending report.
	if op&0xC == 0xC {
		for _, d := range c.devices {
			if d.Address() != addr {
				continue
			}
			if data, ok := d.Poll(); ok {
				return append([]byte{PktAdb, cmd}, data...)
			}
		}
		return []byte{PktAdb, cmd}
	}
	return []byte{PktAdb, cmd}
}
