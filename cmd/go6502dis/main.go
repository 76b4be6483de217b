// Command go6502dis disassembles a hand-assembled listing file, walking
// instructions sequentially from an origin address until it runs off the
// end of the loaded bytes.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"

	"github.com/sterling1111/go6502/disassemble"
	"github.com/sterling1111/go6502/hand_asm"
	"github.com/sterling1111/go6502/memory"
)

var (
	listing = flag.String("listing", "", "Path to a hand-assembled listing file")
	origin  = flag.Uint("origin", 0x8000, "Address the listing was assembled at")
)

func main() {
	flag.Parse()

	if *listing == "" {
		log.Fatalf("-listing is required")
	}
	src, err := ioutil.ReadFile(*listing)
	if err != nil {
		log.Fatalf("can't read listing: %v", err)
	}

	ram := memory.New64K()
	n, err := hand_asm.Load(ram, uint16(*origin), string(src))
	if err != nil {
		log.Fatalf("can't assemble listing: %v", err)
	}

	pc := uint16(*origin)
	end := uint16(*origin) + uint16(n)
	for pc < end {
		text, length := disassemble.Step(pc, ram)
		fmt.Println(text)
		pc += uint16(length)
	}
}
