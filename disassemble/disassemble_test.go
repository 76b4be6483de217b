package disassemble

import (
	"strings"
	"testing"

	"github.com/sterling1111/go6502/memory"
)

func TestStepCoversEveryOpcode(t *testing.T) {
	ram := memory.New64K()
	for op, e := range opcodes {
		ram.Write(0x1000, op)
		ram.Write(0x1001, 0xAB)
		ram.Write(0x1002, 0xCD)
		text, length := Step(0x1000, ram)
		if !strings.Contains(text, e.mnemonic) {
			t.Errorf("opcode %#x: disassembly %q doesn't contain mnemonic %q", op, text, e.mnemonic)
		}
		wantLen := map[int]int{
			modeImplied:   1,
			modeImmediate: 2,
			modeZP:        2,
			modeZPX:       2,
			modeZPY:       2,
			modeIndirectX: 2,
			modeIndirectY: 2,
			modeAbsolute:  3,
			modeAbsoluteX: 3,
			modeAbsoluteY: 3,
			modeIndirect:  3,
		}[e.mode]
		if length != wantLen {
			t.Errorf("opcode %#x: length = %d, want %d", op, length, wantLen)
		}
	}
}

func TestStepUnknownOpcode(t *testing.T) {
	ram := memory.New64K()
	ram.Write(0x2000, 0xFF)
	text, length := Step(0x2000, ram)
	if !strings.Contains(text, "UNKNOWN") {
		t.Errorf("text = %q, want it to contain UNKNOWN", text)
	}
	if length != 1 {
		t.Errorf("length = %d, want 1", length)
	}
}

func TestStepImmediateFormatting(t *testing.T) {
	ram := memory.New64K()
	ram.Write(0x3000, 0xA9) // LDA #imm
	ram.Write(0x3001, 0x42)
	text, length := Step(0x3000, ram)
	if want := "LDA #42"; !strings.Contains(text, want) {
		t.Errorf("text = %q, want it to contain %q", text, want)
	}
	if length != 2 {
		t.Errorf("length = %d, want 2", length)
	}
}
