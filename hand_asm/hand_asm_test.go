package hand_asm

import (
	"testing"

	"github.com/sterling1111/go6502/memory"
)

func TestAssembleBasic(t *testing.T) {
	src := `8000 A9 42       ; LDA #$42
8002 8D 00 90    ; STA $9000
8005 60          ; RTS
`
	b, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []byte{0xA9, 0x42, 0x8D, 0x00, 0x90, 0x60}
	if len(b) != len(want) {
		t.Fatalf("got %d bytes, want %d: %x", len(b), len(want), b)
	}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, b[i], want[i])
		}
	}
}

func TestAssembleIgnoresBlankAndMalformedLines(t *testing.T) {
	src := "\n8000 A9 42\n; a free-floating comment with no address prefix\n8002 60\n"
	b, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got, want := len(b), 3; got != want {
		t.Fatalf("got %d bytes, want %d: %x", got, want, b)
	}
}

func TestAssembleInvalidToken(t *testing.T) {
	_, err := Assemble("8000 ZZ\n")
	if err == nil {
		t.Fatalf("expected error for invalid token")
	}
}

func TestLoadWritesAtOrigin(t *testing.T) {
	ram := memory.New64K()
	n, err := Load(ram, 0x8000, "8000 A9 42\n8002 60\n")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if got := ram.Read(0x8000); got != 0xA9 {
		t.Errorf("ram[0x8000] = %#x, want 0xA9", got)
	}
	if got := ram.Read(0x8001); got != 0x42 {
		t.Errorf("ram[0x8001] = %#x, want 0x42", got)
	}
	if got := ram.Read(0x8002); got != 0x60 {
		t.Errorf("ram[0x8002] = %#x, want 0x60", got)
	}
}
