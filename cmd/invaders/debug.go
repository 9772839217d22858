package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kgreen/i8080invaders/disassemble"
	"github.com/kgreen/i8080invaders/invaders"
)

func newDebugCmd() *cobra.Command {
	var includePort0 bool
	cmd := &cobra.Command{
		Use:   "debug <rom>",
		Short: "Step a ROM image under an interactive terminal debugger",
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
			_, err = tea.NewProgram(debugModel{m: m}).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&includePort0, "port0", false, "Include the optional port 0 coin/start bank")
	return cmd
}

type debugModel struct {
	m         *invaders.Machine
	prevPC    uint16
	halfFrame bool
	err       error
}

// Init satisfies tea.Model; there's nothing to kick off since Init
// already assembled a running machine.
func (d debugModel) Init() tea.Cmd { return nil }

func (d debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return d, tea.Quit
	case " ", "j":
		d.prevPC = d.m.CPU.PC
		if _, err := d.m.CPU.Step(); err != nil {
			d.err = err
			return d, tea.Quit
		}
	case "f":
		d.prevPC = d.m.CPU.PC
		const halfFrameSeconds = 1.0 / 60.0 / 2
		if err := d.m.Step(halfFrameSeconds); err != nil {
			d.err = err
			return d, tea.Quit
		}
		vec := invaders.MidScreenInterrupt
		if d.halfFrame {
			vec = invaders.VblankInterrupt
		}
		d.halfFrame = !d.halfFrame
		if err := d.m.Interrupt(vec); err != nil {
			d.err = err
			return d, tea.Quit
		}
	}
	return d, nil
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	faultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (d debugModel) registers() string {
	c := d.m.CPU
	return fmt.Sprintf(
		"%s %.4X (prev %.4X)\n%s   %.4X\n%s    %.2X\n%s   %.4X\n%s   %.4X\n%s   %.4X\n%s     CY=%t Z=%t S=%t P=%t AC=%t\n",
		labelStyle.Render("PC:"), c.PC, d.prevPC,
		labelStyle.Render("SP:"), c.SP,
		labelStyle.Render("A:"), c.A,
		labelStyle.Render("BC:"), c.BC().Word(),
		labelStyle.Render("DE:"), c.DE().Word(),
		labelStyle.Render("HL:"), c.HL().Word(),
		labelStyle.Render("Flags:"), c.Flags.CY, c.Flags.Z, c.Flags.S, c.Flags.P, c.Flags.AC,
	)
}

func (d debugModel) memoryPage(start uint16) string {
	s := fmt.Sprintf("%.4X | ", start)
	for i := uint16(0); i < 16; i++ {
		b := d.m.CPU.Ram.Read8(start + i)
		if start+i == d.m.CPU.PC {
			s += fmt.Sprintf("[%.2X]", b)
		} else {
			s += fmt.Sprintf(" %.2X ", b)
		}
	}
	return s
}

func (d debugModel) memoryTable() string {
	base := d.m.CPU.PC &^ 0x0F
	var rows []string
	for p := -1; p <= 3; p++ {
		rows = append(rows, d.memoryPage(uint16(int(base)+p*16)))
	}
	return strings.Join(rows, "\n")
}

func (d debugModel) View() string {
	c := d.m.CPU
	next := disassemble.Opname(c.Ram, c.PC)
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		d.registers(),
		labelStyle.Render("Next:")+" "+next,
		labelStyle.Render("IO:")+" "+d.m.Io.Debug(),
		"",
		d.memoryTable(),
		"",
		"space/j: step one instruction   f: step one half-frame   q: quit",
	)
	if d.err != nil {
		return body + "\n" + faultStyle.Render(d.err.Error())
	}
	return body
}
