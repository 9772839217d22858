package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newAsmCmd() *cobra.Command {
	var offset int
	cmd := &cobra.Command{
		Use:   "asm <input> <output>",
		Short: "Pack a hand-written hex listing into a ROM image",
		Long: `Reads lines of the form "XXXX OP A1 A2 ..." (address field
followed by space-separated hex bytes) and writes the assembled bytes to
a binary ROM file, zero-filling everything before --offset. The address
field is not consulted; bytes are appended in line order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return assemble(args[0], args[1], offset)
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0x0000, "Offset to start writing assembled data")
	return cmd
}

func assemble(inPath, outPath string, offset int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("can't open %s: %w", inPath, err)
	}
	defer in.Close()

	output := make([]uint8, offset)
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		toks := strings.Fields(text)
		if len(toks) < 2 {
			return fmt.Errorf("line %d: expected an address and at least one byte, got %q", line, text)
		}
		// toks[0] is the address field; it's positional documentation for
		// the listing, not consulted here since lines are appended in
		// order starting at -offset.
		for _, tok := range toks[1:] {
			v, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return fmt.Errorf("line %d: %q is not a hex byte: %w", line, tok, err)
			}
			output = append(output, uint8(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("can't create %s: %w", outPath, err)
	}
	defer out.Close()
	if _, err := out.Write(output); err != nil {
		return fmt.Errorf("can't write %s: %w", outPath, err)
	}
	return nil
}
