package video

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVRAM struct {
	b [VRAMSize]uint8
}

func (f *fakeVRAM) Read8(addr uint16) uint8 { return f.b[addr] }

var (
	white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.NRGBA{A: 0xFF}
)

// TestDecodeScenario exercises spec.md's example 6: setting bit 0 of VRAM
// byte 0 lights pixel (0, 255); the rotation puts byte 0's low bit at the
// bottom-left corner of the decoded framebuffer.
func TestDecodeScenario(t *testing.T) {
	mem := &fakeVRAM{}
	mem.b[0] = 0x01

	require.True(t, On(mem, 0, 255), "expected pixel (0,255) lit")
	for y := 0; y < 255; y++ {
		assert.False(t, On(mem, 0, y), "pixel (0,%d) unexpectedly lit", y)
	}

	img := Decode(mem, white)
	assert.Equal(t, white, img.NRGBAAt(0, 255), "Decode disagrees with On at (0,255)")
}

func TestDecodeOffPixelsAreOpaqueBlack(t *testing.T) {
	mem := &fakeVRAM{}
	mem.b[0] = 0x01

	img := Decode(mem, white)
	assert.Equal(t, black, img.NRGBAAt(0, 254), "unlit pixel should be opaque black, not the zero value's transparent black")
	assert.Equal(t, uint8(0xFF), img.NRGBAAt(0, 254).A, "unlit pixel must be fully opaque")
}

func TestDecodeIsPureProjection(t *testing.T) {
	mem := &fakeVRAM{}
	mem.b[100] = 0xFF
	before := mem.b
	_ = Decode(mem, white)
	assert.Equal(t, before, mem.b, "Decode mutated VRAM")
}

func TestDecodeEveryByteMapsToOnePixelPerBit(t *testing.T) {
	mem := &fakeVRAM{}
	for i := range mem.b {
		mem.b[i] = 0xFF
	}
	img := Decode(mem, white)
	lit := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if img.NRGBAAt(x, y) == white {
				lit++
			}
		}
	}
	require.Equal(t, Width*Height, lit)
}
