// Package ioshim implements the machine-specific IO surrounding the CPU:
// a 16-bit shift register fed 8 bits at a time on ports 2/4, an input
// port snapshot derived from a Host key-state, and the fatal-trap
// behavior required for any undefined port.
package ioshim

import "fmt"

// Action identifies one logical input this machine understands. The
// binding from a physical key to an Action is a Host concern; the shim
// only ever sees the snapshot.
type Action int

const (
	Coin Action = iota
	P1Start
	P2Start
	P1Fire
	P1Left
	P1Right
	P2Fire
	P2Left
	P2Right
)

// Snapshot is a Host-provided boolean for every Action, true when pressed.
type Snapshot map[Action]bool

// PortTrap is returned by Input/Output for any port this machine doesn't
// define. Per spec this is always fatal.
type PortTrap struct {
	Port  uint8
	Write bool // true if this was an Output call.
}

// Error implements the error interface.
func (e PortTrap) Error() string {
	dir := "input"
	if e.Write {
		dir = "output"
	}
	return fmt.Sprintf("undefined %s port: %d", dir, e.Port)
}

// Chip holds the shift register, shift amount and input port bytes.
type Chip struct {
	shiftRegister uint16
	shiftAmount   uint8
	port0         uint8
	port1         uint8
	port2         uint8
	hasPort0      bool
}

// Def configures a Chip at construction.
type Def struct {
	// IncludePort0 enables port 0 (some cabinets route a second coin/start
	// bank through it; the reference program doesn't read it, but it's
	// cheap to support and several ROMs in this family do use it).
	IncludePort0 bool
}

// Init returns a powered-on Chip. Port1 starts with its bit-4 pull-up set
// (0b0001_0000); if Port0 is included its three high bits start set, both
// per the machine's documented DIP-switch defaults.
func Init(def *Def) *Chip {
	c := &Chip{
		port1:    0b0001_0000,
		hasPort0: def.IncludePort0,
	}
	if c.hasPort0 {
		c.port0 = 0b1110_0000
	}
	return c
}

// Input implements io.Ports.
func (c *Chip) Input(port uint8) (uint8, error) {
	switch port {
	case 0:
		if c.hasPort0 {
			return c.port0, nil
		}
	case 1:
		return c.port1, nil
	case 2:
		return c.port2, nil
	case 3:
		return uint8(c.shiftRegister >> (8 - c.shiftAmount)), nil
	}
	return 0, PortTrap{Port: port}
}

// Output implements io.Ports.
func (c *Chip) Output(port uint8, val uint8) error {
	switch port {
	case 2:
		c.shiftAmount = val & 0b111
	case 4:
		c.shiftRegister = uint16(val)<<8 | c.shiftRegister>>8
	case 3, 5, 6:
		// Reserved for sound hardware. Accepted, no effect.
	default:
		return PortTrap{Port: port, Write: true}
	}
	return nil
}

// setBit sets or clears bit in *port depending on pressed.
func setBit(port *uint8, bit uint8, pressed bool) {
	if pressed {
		*port |= 1 << bit
	} else {
		*port &^= 1 << bit
	}
}

// UpdateInput applies a Host key-state snapshot to the input ports. Keys
// not present in snap are treated as released.
func (c *Chip) UpdateInput(snap Snapshot) {
	setBit(&c.port1, 0, snap[Coin])
	setBit(&c.port1, 1, snap[P2Start])
	setBit(&c.port1, 2, snap[P1Start])
	setBit(&c.port1, 4, snap[P1Fire])
	setBit(&c.port1, 5, snap[P1Left])
	setBit(&c.port1, 6, snap[P1Right])
	setBit(&c.port2, 4, snap[P2Fire])
	setBit(&c.port2, 5, snap[P2Left])
	setBit(&c.port2, 6, snap[P2Right])
	// Bit 3 of port1 is hardwired high (an always-1 input some ROMs probe).
	c.port1 |= 1 << 3
}

// Debug returns a one-line dump of shim state for the Host's debug text.
func (c *Chip) Debug() string {
	return fmt.Sprintf("shift=%.4X amt=%d port1=%.2X port2=%.2X", c.shiftRegister, c.shiftAmount, c.port1, c.port2)
}
