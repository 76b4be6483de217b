// Package disassemble implements a disassembler for the subset of 6502
// opcodes this core's cpu package executes. Unlike a full-opcode-table
// disassembler it has no entries for undocumented opcodes, BRK-as-
// interrupt, or decimal arithmetic - those are all out of scope for the
// core (see cpu package doc) and would disassemble as UNKNOWN here.
package disassemble

import (
	"fmt"

	"github.com/sterling1111/go6502/memory"
)

const (
	modeImplied = iota
	modeImmediate
	modeZP
	modeZPX
	modeZPY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectX
	modeIndirectY
	modeIndirect
)

type entry struct {
	mnemonic string
	mode     int
}

var opcodes = map[uint8]entry{
	0xA9: {"LDA", modeImmediate},
	0xA5: {"LDA", modeZP},
	0xB5: {"LDA", modeZPX},
	0xAD: {"LDA", modeAbsolute},
	0xBD: {"LDA", modeAbsoluteX},
	0xB9: {"LDA", modeAbsoluteY},
	0xA1: {"LDA", modeIndirectX},
	0xB1: {"LDA", modeIndirectY},

	0xA2: {"LDX", modeImmediate},
	0xA6: {"LDX", modeZP},
	0xB6: {"LDX", modeZPY},
	0xAE: {"LDX", modeAbsolute},
	0xBE: {"LDX", modeAbsoluteY},

	0xA0: {"LDY", modeImmediate},
	0xA4: {"LDY", modeZP},
	0xB4: {"LDY", modeZPX},
	0xAC: {"LDY", modeAbsolute},
	0xBC: {"LDY", modeAbsoluteX},

	0x85: {"STA", modeZP},
	0x95: {"STA", modeZPX},
	0x8D: {"STA", modeAbsolute},
	0x9D: {"STA", modeAbsoluteX},
	0x99: {"STA", modeAbsoluteY},
	0x81: {"STA", modeIndirectX},
	0x91: {"STA", modeIndirectY},

	0x86: {"STX", modeZP},
	0x96: {"STX", modeZPY},
	0x8E: {"STX", modeAbsolute},

	0x84: {"STY", modeZP},
	0x94: {"STY", modeZPX},
	0x8C: {"STY", modeAbsolute},

	0x29: {"AND", modeImmediate},
	0x25: {"AND", modeZP},
	0x35: {"AND", modeZPX},
	0x2D: {"AND", modeAbsolute},
	0x3D: {"AND", modeAbsoluteX},
	0x39: {"AND", modeAbsoluteY},
	0x21: {"AND", modeIndirectX},
	0x31: {"AND", modeIndirectY},

	0x09: {"ORA", modeImmediate},
	0x05: {"ORA", modeZP},
	0x15: {"ORA", modeZPX},
	0x0D: {"ORA", modeAbsolute},
	0x1D: {"ORA", modeAbsoluteX},
	0x19: {"ORA", modeAbsoluteY},
	0x01: {"ORA", modeIndirectX},
	0x11: {"ORA", modeIndirectY},

	0x49: {"EOR", modeImmediate},
	0x45: {"EOR", modeZP},
	0x55: {"EOR", modeZPX},
	0x4D: {"EOR", modeAbsolute},
	0x5D: {"EOR", modeAbsoluteX},
	0x59: {"EOR", modeAbsoluteY},
	0x41: {"EOR", modeIndirectX},
	0x51: {"EOR", modeIndirectY},

	0x20: {"JSR", modeAbsolute},
	0x60: {"RTS", modeImplied},
	0x4C: {"JMP", modeAbsolute},
	0x6C: {"JMP", modeIndirect},

	0x48: {"PHA", modeImplied},
	0x08: {"PHP", modeImplied},
	0x68: {"PLA", modeImplied},
	0x28: {"PLP", modeImplied},
	0xBA: {"TSX", modeImplied},
	0x9A: {"TXS", modeImplied},
}

// Step disassembles the instruction at pc and returns its mnemonic text
// plus the number of bytes it occupies (1-3). Unrecognized opcodes
// disassemble as "UNKNOWN" occupying 1 byte so callers can keep stepping
// through a buffer without getting stuck. This always reads up to 2 bytes
// past pc regardless of the actual instruction length, so pc+2 must be a
// valid address.
func Step(pc uint16, ram memory.Bank) (string, int) {
	op := ram.Read(pc)
	arg1 := ram.Read(pc + 1)
	arg2 := ram.Read(pc + 2)

	e, ok := opcodes[op]
	if !ok {
		return fmt.Sprintf("%.4X %.2X       UNKNOWN", pc, op), 1
	}

	switch e.mode {
	case modeImplied:
		return fmt.Sprintf("%.4X %.2X       %s", pc, op, e.mnemonic), 1
	case modeImmediate:
		return fmt.Sprintf("%.4X %.2X %.2X    %s #%.2X", pc, op, arg1, e.mnemonic, arg1), 2
	case modeZP:
		return fmt.Sprintf("%.4X %.2X %.2X    %s %.2X", pc, op, arg1, e.mnemonic, arg1), 2
	case modeZPX:
		return fmt.Sprintf("%.4X %.2X %.2X    %s %.2X,X", pc, op, arg1, e.mnemonic, arg1), 2
	case modeZPY:
		return fmt.Sprintf("%.4X %.2X %.2X    %s %.2X,Y", pc, op, arg1, e.mnemonic, arg1), 2
	case modeIndirectX:
		return fmt.Sprintf("%.4X %.2X %.2X    %s (%.2X,X)", pc, op, arg1, e.mnemonic, arg1), 2
	case modeIndirectY:
		return fmt.Sprintf("%.4X %.2X %.2X    %s (%.2X),Y", pc, op, arg1, e.mnemonic, arg1), 2
	case modeAbsolute:
		return fmt.Sprintf("%.4X %.2X %.2X %.2X %s %.2X%.2X", pc, op, arg1, arg2, e.mnemonic, arg2, arg1), 3
	case modeAbsoluteX:
		return fmt.Sprintf("%.4X %.2X %.2X %.2X %s %.2X%.2X,X", pc, op, arg1, arg2, e.mnemonic, arg2, arg1), 3
	case modeAbsoluteY:
		return fmt.Sprintf("%.4X %.2X %.2X %.2X %s %.2X%.2X,Y", pc, op, arg1, arg2, e.mnemonic, arg2, arg1), 3
	case modeIndirect:
		return fmt.Sprintf("%.4X %.2X %.2X %.2X %s (%.2X%.2X)", pc, op, arg1, arg2, e.mnemonic, arg2, arg1), 3
	default:
		panic(fmt.Sprintf("invalid mode: %d", e.mode))
	}
}
