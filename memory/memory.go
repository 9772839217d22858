// Package memory implements the 16 KiB flat address space of the machine:
// a write-protected ROM region loaded at construction, work RAM, and the
// VRAM window the video decoder projects each frame.
package memory

import "fmt"

const (
	// Size is the total addressable space. All addresses are computed
	// modulo this.
	Size = 0x4000

	// RomEnd is the first address outside the write-protected ROM region.
	RomEnd = 0x2000

	// VRAMStart is the first address of the video RAM window.
	VRAMStart = 0x2400
	// VRAMEnd is the first address outside the video RAM window.
	VRAMEnd = 0x4000
	// VRAMSize is VRAMEnd - VRAMStart.
	VRAMSize = VRAMEnd - VRAMStart

	// MaxROMSize is the largest ROM image this bank will accept.
	MaxROMSize = 0x2000
)

// RomWriteTrap is returned by Write when addr falls inside the
// write-protected ROM region. Per spec this is always fatal; the core
// returns it rather than terminating so the Host decides how to report it.
type RomWriteTrap struct {
	Addr uint16
	Val  uint8
}

// Error implements the error interface.
func (e RomWriteTrap) Error() string {
	return fmt.Sprintf("write to ROM address 0x%.4X (val 0x%.2X)", e.Addr, e.Val)
}

// Bank is the 16 KiB address space backing the CPU. Unlike the general
// R/W banks in larger machines this is a single flat region: the caller
// (cpu.Chip) is the only reader/writer and the video decoder takes a
// read-only view of the VRAM window.
type Bank struct {
	mem [Size]uint8
}

// New returns a Bank with rom copied in starting at address 0. rom must be
// at most MaxROMSize bytes.
func New(rom []uint8) (*Bank, error) {
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("rom image is %d bytes, max is %d", len(rom), MaxROMSize)
	}
	b := &Bank{}
	copy(b.mem[:], rom)
	return b, nil
}

// Read8 returns the byte at addr (masked to the address space).
func (b *Bank) Read8(addr uint16) uint8 {
	return b.mem[addr%Size]
}

// Read16 returns the little-endian word at addr, addr+1.
func (b *Bank) Read16(addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Write8 stores val at addr, or returns a RomWriteTrap if addr is inside
// the ROM region.
func (b *Bank) Write8(addr uint16, val uint8) error {
	addr %= Size
	if addr < RomEnd {
		return RomWriteTrap{Addr: addr, Val: val}
	}
	b.mem[addr] = val
	return nil
}

// Write16 stores val little-endian at addr, addr+1. If either byte lands
// in ROM a RomWriteTrap is returned; the low byte is still attempted first
// so partial writes behave the same as two separate Write8 calls would.
func (b *Bank) Write16(addr uint16, val uint16) error {
	if err := b.Write8(addr, uint8(val)); err != nil {
		return err
	}
	return b.Write8(addr+1, uint8(val>>8))
}

