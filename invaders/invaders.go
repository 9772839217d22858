// Package invaders wires the cpu, ioshim and video packages into the
// machine façade a Host drives: Step advances wall-clock time, Interrupt
// raises a vector on the Host's own schedule, UpdateInput applies a
// snapshot between steps, and Screen decodes a frame on demand.
package invaders

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kgreen/i8080invaders/cpu"
	"github.com/kgreen/i8080invaders/disassemble"
	"github.com/kgreen/i8080invaders/ioshim"
	"github.com/kgreen/i8080invaders/video"
)

// vramBase is where the CPU's flat memory map starts mapping VRAM.
const vramBase = 0x2400

// MidScreenInterrupt and VblankInterrupt are the two RST vectors this
// machine's ROM expects once per 60Hz frame, fired at mid-screen and at
// the end of vertical blank. Which one to raise, and when, is the Host's
// call — Machine only executes the CPU and delivers whichever vector the
// Host asks for.
const (
	MidScreenInterrupt uint8 = 1
	VblankInterrupt    uint8 = 2
)

// Machine is the assembled arcade board: CPU, shift-register IO shim, and
// the video window into the CPU's own memory.
type Machine struct {
	CPU *cpu.Chip
	Io  *ioshim.Chip
}

// Def configures a Machine at construction.
type Def struct {
	Rom          []uint8
	IncludePort0 bool
}

// vramView adapts the CPU's memory bank to video.Memory, translating VRAM
// addresses relative to vramBase.
type vramView struct {
	read8 func(addr uint16) uint8
}

func (v vramView) Read8(addr uint16) uint8 {
	return v.read8(vramBase + addr)
}

// Init assembles a Machine in its power-on state.
func Init(def *Def) (*Machine, error) {
	io := ioshim.Init(&ioshim.Def{IncludePort0: def.IncludePort0})
	chip, err := cpu.Init(&cpu.Def{Rom: def.Rom, Io: io})
	if err != nil {
		return nil, fmt.Errorf("can't initialize machine: %w", err)
	}
	return &Machine{CPU: chip, Io: io}, nil
}

// Step advances the CPU by dtSeconds of wall time, cycle-debt corrected.
// The exact half-frame duration is the Host's choice; Machine just runs
// the clock for however long it's told.
func (m *Machine) Step(dtSeconds float64) error {
	_, err := m.CPU.Step2MHz(dtSeconds)
	return err
}

// Interrupt delivers RST n to the CPU if interrupts are currently
// enabled. The Host decides when and which of MidScreenInterrupt /
// VblankInterrupt to raise, typically twice per 60Hz frame.
func (m *Machine) Interrupt(n uint8) error {
	return m.CPU.Interrupt(n)
}

// UpdateInput applies a Host input snapshot for the next Step.
func (m *Machine) UpdateInput(snap ioshim.Snapshot) {
	m.Io.UpdateInput(snap)
}

// Width and Height report the decoded framebuffer's dimensions.
func (m *Machine) Width() int  { return video.Width }
func (m *Machine) Height() int { return video.Height }

// Screen decodes the current framebuffer: onColor for lit pixels, opaque
// black everywhere else.
func (m *Machine) Screen(onColor color.NRGBA) *image.NRGBA {
	return video.Decode(vramView{read8: m.CPU.Ram.Read8}, onColor)
}

// DebugText renders a single line describing CPU and IO state, suitable
// for an on-screen debug overlay: registers, flags, the instruction about
// to execute, and the shift register.
func (m *Machine) DebugText() string {
	c := m.CPU
	return fmt.Sprintf(
		"PC=%.4X SP=%.4X A=%.2X BC=%.4X DE=%.4X HL=%.4X F=%.2X IE=%t %s | %s | %s",
		c.PC, c.SP, c.A, c.BC().Word(), c.DE().Word(), c.HL().Word(),
		c.Flags.Pack(), c.InterruptsEnabled, c.State,
		disassemble.Opname(c.Ram, c.PC), m.Io.Debug(),
	)
}
