package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kgreen/i8080invaders/invaders"
	"github.com/kgreen/i8080invaders/ioshim"
	"github.com/kgreen/i8080invaders/video"
)

func newRunCmd() *cobra.Command {
	var (
		scale        int
		includePort0 bool
		showDebug    bool
	)
	cmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Run a ROM image against an SDL2 window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("can't read ROM: %w", err)
			}
			m, err := invaders.Init(&invaders.Def{Rom: rom, IncludePort0: includePort0})
			if err != nil {
				return fmt.Errorf("can't initialize machine: %w", err)
			}
			return runLoop(m, scale, showDebug)
		},
	}
	cmd.Flags().IntVar(&scale, "scale", 2, "Window scale factor")
	cmd.Flags().BoolVar(&includePort0, "port0", false, "Include the optional port 0 coin/start bank")
	cmd.Flags().BoolVar(&showDebug, "debug-overlay", false, "Draw a register/flag overlay in the corner")
	return cmd
}

// fastSurface adapts an sdl.Surface to image.Image/draw.Image so video's
// decoded NRGBA frame (and a font overlay) can be blitted directly,
// avoiding a color.Color conversion per pixel.
type fastSurface struct {
	surface *sdl.Surface
}

func (f *fastSurface) ColorModel() color.Model { return f.surface.ColorModel() }
func (f *fastSurface) Bounds() image.Rectangle { return f.surface.Bounds() }
func (f *fastSurface) At(x, y int) color.Color { return f.surface.At(x, y) }

func (f *fastSurface) Set(x, y int, c color.Color) {
	r, g, b, a := c.RGBA()
	i := int32(y)*f.surface.Pitch + int32(x)*int32(f.surface.Format.BytesPerPixel)
	pix := f.surface.Pixels()
	pix[i+0] = uint8(b >> 8)
	pix[i+1] = uint8(g >> 8)
	pix[i+2] = uint8(r >> 8)
	pix[i+3] = uint8(a >> 8)
}

// keymap binds SDL scancodes to the machine's logical inputs. A Host is
// free to rebind these; this is just the cabinet's usual layout.
var keymap = map[sdl.Scancode]ioshim.Action{
	sdl.SCANCODE_C:     ioshim.Coin,
	sdl.SCANCODE_1:     ioshim.P1Start,
	sdl.SCANCODE_2:     ioshim.P2Start,
	sdl.SCANCODE_SPACE: ioshim.P1Fire,
	sdl.SCANCODE_LEFT:  ioshim.P1Left,
	sdl.SCANCODE_RIGHT: ioshim.P1Right,
}

var white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

func runLoop(m *invaders.Machine, scale int, showDebug bool) error {
	var window *sdl.Window
	var err error
	running := true

	sdl.Main(func() {
		var wg sync.WaitGroup
		wg.Add(1)
		sdl.Do(func() {
			if err = sdl.Init(sdl.INIT_EVERYTHING); err != nil {
				return
			}
			window, err = sdl.CreateWindow(
				"invaders",
				sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
				int32(video.Width*scale), int32(video.Height*scale),
				sdl.WINDOW_SHOWN,
			)
			wg.Done()
		})
		wg.Wait()
		if err != nil {
			return
		}
		defer window.Destroy()

		face := basicfont.Face7x13
		ticker := time.NewTicker(time.Second / 120)
		defer ticker.Stop()

		// The board's ROM expects two interrupts per 60Hz frame, at
		// mid-screen and at the end of vblank; this loop ticks at 120Hz
		// and alternates between them every tick.
		const halfFrameSeconds = 1.0 / 60.0 / 2
		halfFrame := false

		for running {
			sdl.Do(func() {
				for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
					if _, ok := ev.(*sdl.QuitEvent); ok {
						running = false
					}
				}
				keys := sdl.GetKeyboardState()
				snap := ioshim.Snapshot{}
				for code, action := range keymap {
					snap[action] = keys[code] != 0
				}
				m.UpdateInput(snap)

				if err := m.Step(halfFrameSeconds); err != nil {
					fmt.Fprintf(os.Stderr, "machine fault: %v\n", err)
					running = false
					return
				}
				vec := invaders.VblankInterrupt
				if !halfFrame {
					vec = invaders.MidScreenInterrupt
				}
				halfFrame = !halfFrame
				if err := m.Interrupt(vec); err != nil {
					fmt.Fprintf(os.Stderr, "machine fault: %v\n", err)
					running = false
					return
				}

				surface, serr := window.GetSurface()
				if serr != nil {
					return
				}
				frame := m.Screen(white)
				dst := &fastSurface{surface: surface}
				draw.Draw(dst, dst.Bounds(), scaleNearest(frame, scale), image.Point{}, draw.Src)
				if showDebug {
					drawString(dst, face, 4, 12, m.DebugText())
				}
				window.UpdateSurface()
			})
			<-ticker.C
		}
	})
	return err
}

// scaleNearest expands src by an integer factor with nearest-neighbor
// sampling — plenty for a 224x256 1-bit source.
func scaleNearest(src *image.NRGBA, factor int) image.Image {
	if factor <= 1 {
		return src
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			for dy := 0; dy < factor; dy++ {
				for dx := 0; dx < factor; dx++ {
					out.SetNRGBA(x*factor+dx, y*factor+dy, c)
				}
			}
		}
	}
	return out
}

// drawString renders s at (x, y) using face, one of the only places this
// module pulls in golang.org/x/image: a lightweight overlay font so the
// debug text doesn't need its own bitmap asset.
func drawString(dst draw.Image, face font.Face, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(white),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
