// Command go6502run loads a hand-assembled listing into memory, points the
// reset vector at it, and runs the core until it halts or an instruction
// budget is exhausted.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"

	"github.com/sterling1111/go6502/cpu"
	"github.com/sterling1111/go6502/hand_asm"
	"github.com/sterling1111/go6502/memory"
)

var (
	listing = flag.String("listing", "", "Path to a hand-assembled listing file")
	origin  = flag.Uint("origin", 0x8000, "Address to load the listing at")
	steps   = flag.Uint64("steps", 1000, "Maximum instructions to execute before stopping")
	trace   = flag.Bool("trace", false, "If true, log register state after every step")
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
	ram.Write(cpu.RESET_VECTOR, uint8(*origin&0xFF))
	ram.Write(cpu.RESET_VECTOR+1, uint8(*origin>>8))

	c := cpu.New(ram)
	log.Printf("loaded %d bytes at %#.4x, reset vector -> %#.4x", n, *origin, c.PC)

	var totalCycles uint32
	for i := uint64(0); i < *steps; i++ {
		if c.Halted() {
			op, _ := c.HaltedOpcode()
			log.Printf("halted on unrecognized opcode %#.2x after %d instructions", op, i)
			break
		}
		cycles := c.Step()
		totalCycles += cycles
		if *trace {
			log.Printf("PC=%.4X A=%.2X X=%.2X Y=%.2X SP=%.2X P=%.2X cycles=%d",
				c.PC, c.A, c.X, c.Y, c.SP, c.P, cycles)
		}
	}

	fmt.Printf("final state: PC=%.4X A=%.2X X=%.2X Y=%.2X SP=%.2X P=%.2X total cycles=%d\n",
		c.PC, c.A, c.X, c.Y, c.SP, c.P, totalCycles)
}
