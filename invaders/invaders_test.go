package invaders

import (
	"image/color"
	"testing"

	"github.com/kgreen/i8080invaders/ioshim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitStartsRunning(t *testing.T) {
	m, err := Init(&Def{Rom: make([]uint8, 0x2000)})
	require.NoError(t, err)
	assert.Equal(t, uint16(0), m.CPU.PC)
}

// TestHostDrivesStepAndInterruptIndependently exercises spec.md's §4.7
// contract: Step only advances wall-clock time, and it's the Host that
// decides which vector to raise and when — typically twice per 60Hz
// frame, alternating MidScreenInterrupt and VblankInterrupt.
func TestHostDrivesStepAndInterruptIndependently(t *testing.T) {
	rom := make([]uint8, 0x2000)
	m, err := Init(&Def{Rom: rom})
	require.NoError(t, err)
	m.CPU.InterruptsEnabled = true
	m.CPU.SP = 0x2400

	require.NoError(t, m.Step(1.0/60.0/2))
	require.NoError(t, m.Interrupt(MidScreenInterrupt))
	assert.Equal(t, uint16(8*1), m.CPU.PC, "Host-raised mid-screen vector")

	m.CPU.InterruptsEnabled = true
	require.NoError(t, m.Step(1.0/60.0/2))
	require.NoError(t, m.Interrupt(VblankInterrupt))
	assert.Equal(t, uint16(8*2), m.CPU.PC, "Host-raised vblank vector")
}

func TestWidthAndHeight(t *testing.T) {
	m, err := Init(&Def{Rom: make([]uint8, 0x2000)})
	require.NoError(t, err)
	assert.Equal(t, 224, m.Width())
	assert.Equal(t, 256, m.Height())
}

func TestScreenReflectsVRAMWrites(t *testing.T) {
	rom := make([]uint8, 0x2000)
	m, err := Init(&Def{Rom: rom})
	require.NoError(t, err)
	require.NoError(t, m.CPU.Ram.Write8(0x2400, 0x01))
	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	img := m.Screen(white)
	assert.Equal(t, white, img.NRGBAAt(0, 255))
}

func TestUpdateInputReachesIoShim(t *testing.T) {
	m, err := Init(&Def{Rom: make([]uint8, 0x2000)})
	require.NoError(t, err)
	m.UpdateInput(ioshim.Snapshot{ioshim.Coin: true})
	got, err := m.Io.Input(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0b0000_1001), got)
}

func TestDebugTextIncludesPC(t *testing.T) {
	m, err := Init(&Def{Rom: make([]uint8, 0x2000)})
	require.NoError(t, err)
	text := m.DebugText()
	assert.Contains(t, text, "PC=0000")
	assert.Contains(t, text, "NOP")
}
