package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kgreen/i8080invaders/disassemble"
)

// romMemory adapts a flat byte slice to disassemble.Memory, reading zero
// past the end instead of panicking so the last instruction in a file
// still prints even if its operand bytes are missing.
type romMemory []uint8

func (m romMemory) Read8(addr uint16) uint8 {
	if int(addr) >= len(m) {
		return 0
	}
	return m[addr]
}

func newDisasmCmd() *cobra.Command {
	var startPC uint16
	cmd := &cobra.Command{
		Use:   "disasm <rom>",
		Short: "Disassemble a ROM image to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("can't read ROM: %w", err)
			}
			mem := romMemory(b)
			pc := startPC
			for int(pc) < len(b) {
				name := disassemble.Opname(mem, pc)
				fmt.Printf("%.4X  %s\n", pc, name)
				pc += uint16(disassemble.Length(mem.Read8(pc)))
			}
			return nil
		},
	}
	cmd.Flags().Uint16Var(&startPC, "start-pc", 0x0000, "Address to start disassembling from")
	return cmd
}
