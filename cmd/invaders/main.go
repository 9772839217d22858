// Command invaders hosts the machine: run it against SDL2, disassemble a
// ROM image, pack a hand-written hex listing into one, or step it live
// under a terminal debugger.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "invaders",
		Short: "8080 arcade board emulator",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newDisasmCmd())
	root.AddCommand(newAsmCmd())
	root.AddCommand(newDebugCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
