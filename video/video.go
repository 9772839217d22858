// Package video decodes the machine's bit-packed, column-major VRAM into
// a rotated pixel buffer. Decode is a pure projection: it never touches
// CPU or IO state.
package video

import (
	"image"
	"image/color"
	"image/draw"
)

// Width and Height are the rotated framebuffer's dimensions — the
// cabinet's CRT is mounted sideways, so the decoded image is taller than
// it is wide relative to the 256x224 VRAM layout.
const (
	Width  = 224
	Height = 256
)

// VRAMSize is the number of VRAM bytes Decode expects, 7168 bytes of
// 1-bit-per-pixel video memory (224*256/8).
const VRAMSize = Width * Height / 8

// Memory is the minimal read-only view Decode needs into the VRAM window.
// addr is relative to the start of VRAM, in [0, VRAMSize).
type Memory interface {
	Read8(addr uint16) uint8
}

// On reports whether pixel (x, y) is lit, without materializing a full
// framebuffer. x is in [0, Width), y is in [0, Height).
func On(mem Memory, x, y int) bool {
	p := (Height - 1 - y) + x*Height
	byteIndex := p / 8
	bit := uint(p % 8)
	return mem.Read8(uint16(byteIndex))&(1<<bit) != 0
}

// Decode projects VRAM into an NRGBA image: lit pixels become onColor,
// unlit pixels are opaque black (0xFF000000), never the zero value's
// transparent black — this is a framebuffer, not a mask.
func Decode(mem Memory, onColor color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{A: 0xFF}), image.Point{}, draw.Src)
	for byteIndex := 0; byteIndex < VRAMSize; byteIndex++ {
		b := mem.Read8(uint16(byteIndex))
		if b == 0 {
			continue
		}
		for bit := 0; bit < 8; bit++ {
			if b&(1<<uint(bit)) == 0 {
				continue
			}
			p := 8*byteIndex + bit
			x := p / Height
			y := Height - 1 - p%Height
			img.SetNRGBA(x, y, onColor)
		}
	}
	return img
}
