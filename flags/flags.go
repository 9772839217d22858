// Package flags implements the 8080 condition flag register: five
// single-bit flags and their packed byte form as pushed/popped with the
// accumulator (the PSW).
package flags

// Bit positions within the packed flag byte. Bits 1, 3 and 5 are always
// read as zero.
const (
	bitCY = uint8(0x01)
	bitP  = uint8(0x04)
	bitAC = uint8(0x10)
	bitZ  = uint8(0x40)
	bitS  = uint8(0x80)
)

// parityTable[v] is true iff v has an even number of 1 bits. Computed once
// instead of counted on every flag update.
var parityTable [256]bool

func init() {
	for i := range parityTable {
		v := uint8(i)
		p := uint8(0)
		for v != 0 {
			p ^= v & 1
			v >>= 1
		}
		parityTable[i] = p == 0
	}
}

// Parity reports whether the low 8 bits of v have an even number of 1 bits.
func Parity(v uint8) bool {
	return parityTable[v]
}

// Flags holds the five condition flags of the 8080.
type Flags struct {
	Z  bool // Zero
	S  bool // Sign (bit 7 of last result)
	P  bool // Parity (even)
	CY bool // Carry
	AC bool // Auxiliary carry
}

// Pack returns the flags as a single byte using the wire layout
// CY=bit0, P=bit2, AC=bit4, Z=bit6, S=bit7. Bits 1, 3 and 5 are zero.
func (f Flags) Pack() uint8 {
	var b uint8
	if f.CY {
		b |= bitCY
	}
	if f.P {
		b |= bitP
	}
	if f.AC {
		b |= bitAC
	}
	if f.Z {
		b |= bitZ
	}
	if f.S {
		b |= bitS
	}
	return b
}

// Unpack sets f from a packed byte using the same layout as Pack.
func (f *Flags) Unpack(b uint8) {
	f.CY = b&bitCY != 0
	f.P = b&bitP != 0
	f.AC = b&bitAC != 0
	f.Z = b&bitZ != 0
	f.S = b&bitS != 0
}

// SetFromResult sets Z, S and P from the low 8 bits of an 8-bit result.
// CY and AC are left untouched — callers that need them set their own
// value (arithmetic carry isn't derivable from the result alone).
func (f *Flags) SetFromResult(result uint8) {
	f.Z = result == 0
	f.S = result&0x80 != 0
	f.P = Parity(result)
}
