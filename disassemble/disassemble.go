// Package disassemble implements a pure opcode-to-mnemonic decoder for
// the 8080 instruction set used for the CPU's debug text and the
// disassembler cmd tool.
package disassemble

import "fmt"

// Memory is the minimal read-only view a disassembler needs.
type Memory interface {
	Read8(addr uint16) uint8
}

// threeByteOps are every opcode that carries a 16-bit address or
// immediate (LXI, SHLD/LHLD, STA/LDA, JMP/Jcc, CALL/Ccc).
var threeByteOps = map[uint8]bool{
	0x01: true, 0x11: true, 0x21: true, 0x31: true,
	0x22: true, 0x2A: true, 0x32: true, 0x3A: true,
	0xC3: true, 0xCB: true, 0xC2: true, 0xCA: true, 0xD2: true, 0xDA: true,
	0xE2: true, 0xEA: true, 0xF2: true, 0xFA: true,
	0xCD: true, 0xDD: true, 0xED: true, 0xFD: true,
	0xC4: true, 0xCC: true, 0xD4: true, 0xDC: true,
	0xE4: true, 0xEC: true, 0xF4: true, 0xFC: true,
}

// twoByteOps are every opcode that carries an 8-bit immediate or port
// (MVI, the ALU-immediate block, IN/OUT).
var twoByteOps = map[uint8]bool{
	0x06: true, 0x0E: true, 0x16: true, 0x1E: true,
	0x26: true, 0x2E: true, 0x36: true, 0x3E: true,
	0xC6: true, 0xCE: true, 0xD6: true, 0xDE: true,
	0xE6: true, 0xEE: true, 0xF6: true, 0xFE: true,
	0xD3: true, 0xDB: true,
}

// Length reports how many bytes the instruction starting with opcode op
// occupies, for callers (disassembly listings, debuggers) stepping
// through memory without executing it.
func Length(op uint8) uint8 {
	switch {
	case threeByteOps[op]:
		return 3
	case twoByteOps[op]:
		return 2
	default:
		return 1
	}
}

// Opname returns the mnemonic for the instruction at pc, formatting any
// immediate byte or 16-bit address into the string. It never reads beyond
// pc+2 and never mutates mem. Unrecognised opcodes return
// "Unknown opcode: XX".
func Opname(mem Memory, pc uint16) string {
	op := mem.Read8(pc)
	d8 := func() uint8 { return mem.Read8(pc + 1) }
	a16 := func() uint16 { return uint16(mem.Read8(pc+2))<<8 | uint16(mem.Read8(pc+1)) }

	switch op {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38:
		return "NOP"
	case 0x01:
		return fmt.Sprintf("LXI B, $%.4X", a16())
	case 0x02:
		return "STAX B"
	case 0x03:
		return "INX B"
	case 0x04:
		return "INR B"
	case 0x05:
		return "DCR B"
	case 0x06:
		return fmt.Sprintf("MVI B, $%.2X", d8())
	case 0x07:
		return "RLC"
	case 0x09:
		return "DAD B"
	case 0x0A:
		return "LDAX B"
	case 0x0B:
		return "DCX B"
	case 0x0C:
		return "INR C"
	case 0x0D:
		return "DCR C"
	case 0x0E:
		return fmt.Sprintf("MVI C, $%.2X", d8())
	case 0x0F:
		return "RRC"
	case 0x11:
		return fmt.Sprintf("LXI D, $%.4X", a16())
	case 0x12:
		return "STAX D"
	case 0x13:
		return "INX D"
	case 0x14:
		return "INR D"
	case 0x15:
		return "DCR D"
	case 0x16:
		return fmt.Sprintf("MVI D, $%.2X", d8())
	case 0x17:
		return "RAL"
	case 0x19:
		return "DAD D"
	case 0x1A:
		return "LDAX D"
	case 0x1B:
		return "DCX D"
	case 0x1C:
		return "INR E"
	case 0x1D:
		return "DCR E"
	case 0x1E:
		return fmt.Sprintf("MVI E, $%.2X", d8())
	case 0x1F:
		return "RAR"
	case 0x21:
		return fmt.Sprintf("LXI H, $%.4X", a16())
	case 0x22:
		return fmt.Sprintf("SHLD $%.4X", a16())
	case 0x23:
		return "INX H"
	case 0x24:
		return "INR H"
	case 0x25:
		return "DCR H"
	case 0x26:
		return fmt.Sprintf("MVI H, $%.2X", d8())
	case 0x27:
		return "DAA"
	case 0x29:
		return "DAD H"
	case 0x2A:
		return fmt.Sprintf("LHLD $%.4X", a16())
	case 0x2B:
		return "DCX H"
	case 0x2C:
		return "INR L"
	case 0x2D:
		return "DCR L"
	case 0x2E:
		return fmt.Sprintf("MVI L, $%.2X", d8())
	case 0x2F:
		return "CMA"
	case 0x31:
		return fmt.Sprintf("LXI SP, $%.4X", a16())
	case 0x32:
		return fmt.Sprintf("STA $%.4X", a16())
	case 0x33:
		return "INX SP"
	case 0x34:
		return "INR M"
	case 0x35:
		return "DCR M"
	case 0x36:
		return fmt.Sprintf("MVI M, $%.2X", d8())
	case 0x37:
		return "STC"
	case 0x39:
		return "DAD SP"
	case 0x3A:
		return fmt.Sprintf("LDA $%.4X", a16())
	case 0x3B:
		return "DCX SP"
	case 0x3C:
		return "INR A"
	case 0x3D:
		return "DCR A"
	case 0x3E:
		return fmt.Sprintf("MVI A, $%.2X", d8())
	case 0x3F:
		return "CMC"
	case 0x76:
		return "HLT"
	case 0xC3, 0xCB:
		return fmt.Sprintf("JMP $%.4X", a16())
	case 0xC2:
		return fmt.Sprintf("JNZ $%.4X", a16())
	case 0xCA:
		return fmt.Sprintf("JZ $%.4X", a16())
	case 0xD2:
		return fmt.Sprintf("JNC $%.4X", a16())
	case 0xDA:
		return fmt.Sprintf("JC $%.4X", a16())
	case 0xE2:
		return fmt.Sprintf("JPO $%.4X", a16())
	case 0xEA:
		return fmt.Sprintf("JPE $%.4X", a16())
	case 0xF2:
		return fmt.Sprintf("JP $%.4X", a16())
	case 0xFA:
		return fmt.Sprintf("JM $%.4X", a16())
	case 0xCD, 0xDD, 0xED, 0xFD:
		return fmt.Sprintf("CALL $%.4X", a16())
	case 0xC4:
		return fmt.Sprintf("CNZ $%.4X", a16())
	case 0xCC:
		return fmt.Sprintf("CZ $%.4X", a16())
	case 0xD4:
		return fmt.Sprintf("CNC $%.4X", a16())
	case 0xDC:
		return fmt.Sprintf("CC $%.4X", a16())
	case 0xE4:
		return fmt.Sprintf("CPO $%.4X", a16())
	case 0xEC:
		return fmt.Sprintf("CPE $%.4X", a16())
	case 0xF4:
		return fmt.Sprintf("CP $%.4X", a16())
	case 0xFC:
		return fmt.Sprintf("CM $%.4X", a16())
	case 0xC9, 0xD9:
		return "RET"
	case 0xC0:
		return "RNZ"
	case 0xC8:
		return "RZ"
	case 0xD0:
		return "RNC"
	case 0xD8:
		return "RC"
	case 0xE0:
		return "RPO"
	case 0xE8:
		return "RPE"
	case 0xF0:
		return "RP"
	case 0xF8:
		return "RM"
	case 0xC6:
		return fmt.Sprintf("ADI $%.2X", d8())
	case 0xCE:
		return fmt.Sprintf("ACI $%.2X", d8())
	case 0xD6:
		return fmt.Sprintf("SUI $%.2X", d8())
	case 0xDE:
		return fmt.Sprintf("SBI $%.2X", d8())
	case 0xE6:
		return fmt.Sprintf("ANI $%.2X", d8())
	case 0xEE:
		return fmt.Sprintf("XRI $%.2X", d8())
	case 0xF6:
		return fmt.Sprintf("ORI $%.2X", d8())
	case 0xFE:
		return fmt.Sprintf("CPI $%.2X", d8())
	case 0xC1:
		return "POP B"
	case 0xD1:
		return "POP D"
	case 0xE1:
		return "POP H"
	case 0xF1:
		return "POP PSW"
	case 0xC5:
		return "PUSH B"
	case 0xD5:
		return "PUSH D"
	case 0xE5:
		return "PUSH H"
	case 0xF5:
		return "PUSH PSW"
	case 0xE3:
		return "XTHL"
	case 0xE9:
		return "PCHL"
	case 0xF9:
		return "SPHL"
	case 0xEB:
		return "XCHG"
	case 0xF3:
		return "DI"
	case 0xFB:
		return "EI"
	case 0xDB:
		return fmt.Sprintf("IN $%.2X", d8())
	case 0xD3:
		return fmt.Sprintf("OUT $%.2X", d8())
	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		return fmt.Sprintf("RST %d", (op>>3)&0x07)
	}

	if mnemonic, ok := movMnemonic(op); ok {
		return mnemonic
	}
	if mnemonic, ok := aluMnemonic(op); ok {
		return mnemonic
	}
	return fmt.Sprintf("Unknown opcode: %.2X", op)
}

var regName = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// movMnemonic decodes the 0x40-0x7F MOV block (minus 0x76 == HLT, handled
// above).
func movMnemonic(op uint8) (string, bool) {
	if op < 0x40 || op > 0x7F || op == 0x76 {
		return "", false
	}
	dst := (op >> 3) & 0x07
	src := op & 0x07
	return fmt.Sprintf("MOV %s,%s", regName[dst], regName[src]), true
}

var aluName = [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}

// aluMnemonic decodes the 0x80-0xBF ALU-over-register block.
func aluMnemonic(op uint8) (string, bool) {
	if op < 0x80 || op > 0xBF {
		return "", false
	}
	alu := (op >> 3) & 0x07
	src := op & 0x07
	return fmt.Sprintf("%s %s", aluName[alu], regName[src]), true
}
