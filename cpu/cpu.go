// Package cpu implements the 8080 interpreter: register file, flag
// semantics, fetch-decode-execute, the interrupt model and per-instruction
// cycle accounting described in spec.md §4.4.
package cpu

import (
	"fmt"

	"github.com/kgreen/i8080invaders/flags"
	"github.com/kgreen/i8080invaders/io"
	"github.com/kgreen/i8080invaders/memory"
)

// State is the run/halt state of the CPU. Halted is terminal.
type State int

const (
	Running State = iota
	Halted
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Halted {
		return "Halted"
	}
	return "Running"
}

// clockHz is the simulated clock rate used by Step to convert wall time
// into a cycle budget.
const clockHz = 2_000_000

// maxInstructionCycles caps the overshoot that Step2MHz carries forward as
// cycle_debt, per spec.md §9's cycle-debt design note.
const maxInstructionCycles = 0xFF

// UnimplementedOpcode is returned when the fetched byte has no entry in
// the opcode table.
type UnimplementedOpcode struct {
	Opcode uint8
	PC     uint16
}

// Error implements the error interface.
func (e UnimplementedOpcode) Error() string {
	return fmt.Sprintf("unimplemented opcode 0x%.2X at PC 0x%.4X", e.Opcode, e.PC)
}

// HaltTrap is returned by Step once HLT has executed: the HLT instruction
// itself completes normally and leaves the CPU Halted, and every later Step
// call reports HaltTrap. The Halted state is terminal; the Host decides
// whether this is fatal.
type HaltTrap struct {
	PC uint16
}

// Error implements the error interface.
func (e HaltTrap) Error() string {
	return fmt.Sprintf("HLT executed at PC 0x%.4X", e.PC)
}

// Pair is a 16-bit view over two 8-bit registers, high-byte-first, with no
// dependence on host endianness.
type Pair struct {
	hi, lo *uint8
}

// High returns the most significant byte.
func (p Pair) High() uint8 { return *p.hi }

// Low returns the least significant byte.
func (p Pair) Low() uint8 { return *p.lo }

// Word returns the combined 16-bit value, high-byte-first.
func (p Pair) Word() uint16 { return uint16(*p.hi)<<8 | uint16(*p.lo) }

// SetWord stores v across the pair, high-byte-first.
func (p Pair) SetWord(v uint16) {
	*p.hi = uint8(v >> 8)
	*p.lo = uint8(v)
}

// SetHigh stores the high byte only.
func (p Pair) SetHigh(v uint8) { *p.hi = v }

// SetLow stores the low byte only.
func (p Pair) SetLow(v uint8) { *p.lo = v }

// Chip is an 8080 register file, flags, memory and cycle accounting bound
// together. All state is created at construction; there is no dynamic
// allocation on the hot path.
type Chip struct {
	A, B, C, D, E, H, L uint8
	SP, PC              uint16
	Flags               flags.Flags

	InterruptsEnabled bool
	State             State

	Ram *memory.Bank
	Io  io.Ports

	cycleDebt  int64
	totalCycles uint64
}

// Def configures a Chip at construction.
type Def struct {
	Rom []uint8
	Io  io.Ports
}

// Init returns a Chip in its power-on state: registers and flags zeroed,
// interrupts disabled, SP=0, PC=0, ROM copied into memory at address 0.
func Init(def *Def) (*Chip, error) {
	ram, err := memory.New(def.Rom)
	if err != nil {
		return nil, fmt.Errorf("can't initialize memory: %w", err)
	}
	return &Chip{
		Ram:   ram,
		Io:    def.Io,
		State: Running,
	}, nil
}

// BC returns the B/C register pair.
func (c *Chip) BC() Pair { return Pair{&c.B, &c.C} }

// DE returns the D/E register pair.
func (c *Chip) DE() Pair { return Pair{&c.D, &c.E} }

// HL returns the H/L register pair.
func (c *Chip) HL() Pair { return Pair{&c.H, &c.L} }

// PSW returns the (A, packed-flags) view used by PUSH/POP PSW.
func (c *Chip) PSW() uint16 {
	return uint16(c.A)<<8 | uint16(c.Flags.Pack())
}

// SetPSW loads A and Flags from the (A, packed-flags) view.
func (c *Chip) SetPSW(v uint16) {
	c.A = uint8(v >> 8)
	c.Flags.Unpack(uint8(v))
}

// Cycles returns the running total of cycles executed since construction.
func (c *Chip) Cycles() uint64 { return c.totalCycles }

// regValue returns the value of the register named by a 3-bit field
// (B,C,D,E,H,L,M,A in that order, matching the 8080's register encoding).
func (c *Chip) regValue(idx uint8) (uint8, error) {
	switch idx {
	case 0:
		return c.B, nil
	case 1:
		return c.C, nil
	case 2:
		return c.D, nil
	case 3:
		return c.E, nil
	case 4:
		return c.H, nil
	case 5:
		return c.L, nil
	case 6:
		return c.Ram.Read8(c.HL().Word()), nil
	case 7:
		return c.A, nil
	}
	return 0, fmt.Errorf("invalid register index %d", idx)
}

// setReg stores v into the register named by a 3-bit field. Index 6 (M)
// writes through memory and can return a RomWriteTrap.
func (c *Chip) setReg(idx uint8, v uint8) error {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		return c.Ram.Write8(c.HL().Word(), v)
	case 7:
		c.A = v
	default:
		return fmt.Errorf("invalid register index %d", idx)
	}
	return nil
}

// pushWord pushes v onto the stack, decrementing SP by 2.
func (c *Chip) pushWord(v uint16) error {
	if err := c.Ram.Write8(c.SP-1, uint8(v>>8)); err != nil {
		return err
	}
	if err := c.Ram.Write8(c.SP-2, uint8(v)); err != nil {
		return err
	}
	c.SP -= 2
	return nil
}

// popWord pops a word off the stack, incrementing SP by 2.
func (c *Chip) popWord() uint16 {
	v := uint16(c.Ram.Read8(c.SP)) | uint16(c.Ram.Read8(c.SP+1))<<8
	c.SP += 2
	return v
}

// Step executes one instruction: fetch, dispatch, apply effect, advance PC
// (unless the instruction transferred control itself), and returns the
// instruction's cycle cost.
func (c *Chip) Step() (int, error) {
	if c.State == Halted {
		return 0, HaltTrap{PC: c.PC}
	}
	op := c.Ram.Read8(c.PC)
	row := opcodeTable[op]
	if row.exec == nil {
		return 0, UnimplementedOpcode{Opcode: op, PC: c.PC}
	}
	jumped, err := row.exec(c)
	if err != nil {
		return 0, err
	}
	cycles := row.cycles
	if jumped {
		cycles = row.takenCycles
	} else {
		c.PC += uint16(row.length)
	}
	c.totalCycles += uint64(cycles)
	return cycles, nil
}

// run executes instructions until the cumulative cost since the start of
// this call reaches budget cycles, or the machine halts/faults. It returns
// the cycles actually spent (which may exceed budget by at most the cost
// of the final instruction).
func (c *Chip) run(budget int64) (int64, error) {
	var spent int64
	for spent < budget {
		cycles, err := c.Step()
		if err != nil {
			return spent, err
		}
		spent += int64(cycles)
	}
	return spent, nil
}

// Step2MHz simulates a 2 MHz clock for dtSeconds of wall time, self
// correcting for fractional cycles carried across calls via cycle_debt.
// It returns the cycles actually spent.
func (c *Chip) Step2MHz(dtSeconds float64) (int64, error) {
	budget := int64(clockHz*dtSeconds) - c.cycleDebt
	if budget <= 0 {
		c.cycleDebt = -budget
		return 0, nil
	}
	spent, err := c.run(budget)
	overshoot := spent - budget
	if overshoot > maxInstructionCycles {
		overshoot = maxInstructionCycles
	}
	if overshoot < 0 {
		overshoot = 0
	}
	c.cycleDebt = overshoot
	return spent, err
}

// Interrupt services interrupt n if interrupts are currently enabled:
// pushes PC, jumps to 8*n, and clears InterruptsEnabled. If interrupts are
// disabled this is a cycle-neutral no-op.
func (c *Chip) Interrupt(n uint8) error {
	if !c.InterruptsEnabled {
		return nil
	}
	if err := c.pushWord(c.PC); err != nil {
		return err
	}
	c.PC = 8 * uint16(n)
	c.InterruptsEnabled = false
	return nil
}
