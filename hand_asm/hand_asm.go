// Package hand_asm turns a hand-assembled listing into raw bytes. Lines
// are of the form:
//
//	XXXX OP A1 A2 ...
//
// where XXXX is a 4 hex digit address (informational; bytes are placed
// sequentially starting at the requested origin, not re-seeked per line)
// and OP/A1/A2/... are hex byte tokens. Blank lines and lines that don't
// start with 4 hex digits followed by whitespace are ignored, so a
// listing can carry comments the same way the teacher's version did via
// its egrep/sed preprocessing, just without shelling out to do it.
package hand_asm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sterling1111/go6502/memory"
)

var lineRE = regexp.MustCompile(`^[0-9A-Fa-f]{4}\s+(.*)$`)

// Assemble parses src and returns the sequential bytes it encodes.
func Assemble(src string) ([]byte, error) {
	var out []byte
	for n, line := range strings.Split(src, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := lineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := m[1]
		// Drop an inline comment introduced by '*' or ';', the way the
		// original listing format does for annotated disassembly.
		if i := strings.IndexAny(rest, "*;"); i >= 0 {
			rest = rest[:i]
		}
		toks := strings.Fields(rest)
		if len(toks) == 0 {
			continue
		}
		for _, tok := range toks {
			b, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid byte token %q: %w", n+1, tok, err)
			}
			out = append(out, byte(b))
		}
	}
	return out, nil
}

// Load assembles src and writes the resulting bytes into ram starting at
// origin, returning the number of bytes written.
func Load(ram memory.Bank, origin uint16, src string) (int, error) {
	b, err := Assemble(src)
	if err != nil {
		return 0, err
	}
	for i, v := range b {
		ram.Write(origin+uint16(i), v)
	}
	return len(b), nil
}
