// Package cpu implements the MOS 6502 instruction-dispatch interpreter:
// opcode decode, the addressing-mode resolvers, the stack/flag discipline,
// and the cycle-accounting model. It has no concept of timing, peripherals,
// interrupts, or program loading — those are external collaborators (see
// the cmd/ tree) that drive a Chip through its public surface.
package cpu

import (
	"github.com/sterling1111/go6502/disassemble"
	"github.com/sterling1111/go6502/memory"
)

// RESET_VECTOR is the little-endian address of the reset vector.
const RESET_VECTOR = uint16(0xFFFC)

// Processor status flag masks. Bit order (LSB->MSB) is C,Z,I,D,B,unused,V,N.
const (
	P_CARRY     = uint8(0x01)
	P_ZERO      = uint8(0x02)
	P_INTERRUPT = uint8(0x04)
	P_DECIMAL   = uint8(0x08)
	P_BREAK     = uint8(0x10)
	P_UNUSED    = uint8(0x20) // Always reads 0 here: the core never sets it and PLP masks it off.
	P_OVERFLOW  = uint8(0x40)
	P_NEGATIVE  = uint8(0x80)
)

// Opcode values. Naming follows <mnemonic>_<mode>.
const (
	opLDA_IM   = 0xA9
	opLDA_ZP   = 0xA5
	opLDA_ZPX  = 0xB5
	opLDA_ABS  = 0xAD
	opLDA_ABSX = 0xBD
	opLDA_ABSY = 0xB9
	opLDA_XIND = 0xA1
	opLDA_INDY = 0xB1

	opLDX_IM  = 0xA2
	opLDX_ZP  = 0xA6
	opLDX_ZPY = 0xB6
	opLDX_ABS = 0xAE
	opLDX_ABSY = 0xBE

	opLDY_IM   = 0xA0
	opLDY_ZP   = 0xA4
	opLDY_ZPX  = 0xB4
	opLDY_ABS  = 0xAC
	opLDY_ABSX = 0xBC

	opSTA_ZP   = 0x85
	opSTA_ZPX  = 0x95
	opSTA_ABS  = 0x8D
	opSTA_ABSX = 0x9D
	opSTA_ABSY = 0x99
	opSTA_XIND = 0x81
	opSTA_INDY = 0x91

	opSTX_ZP  = 0x86
	opSTX_ZPY = 0x96
	opSTX_ABS = 0x8E

	opSTY_ZP  = 0x84
	opSTY_ZPX = 0x94
	opSTY_ABS = 0x8C

	opAND_IM   = 0x29
	opAND_ZP   = 0x25
	opAND_ZPX  = 0x35
	opAND_ABS  = 0x2D
	opAND_ABSX = 0x3D
	opAND_ABSY = 0x39
	opAND_XIND = 0x21
	opAND_INDY = 0x31

	opORA_IM   = 0x09
	opORA_ZP   = 0x05
	opORA_ZPX  = 0x15
	opORA_ABS  = 0x0D
	opORA_ABSX = 0x1D
	opORA_ABSY = 0x19
	opORA_XIND = 0x01
	opORA_INDY = 0x11

	opEOR_IM   = 0x49
	opEOR_ZP   = 0x45
	opEOR_ZPX  = 0x55
	opEOR_ABS  = 0x4D
	opEOR_ABSX = 0x5D
	opEOR_ABSY = 0x59
	opEOR_XIND = 0x41
	opEOR_INDY = 0x51

	opJSR     = 0x20
	opRTS     = 0x60
	opJMP_ABS = 0x4C
	opJMP_IND = 0x6C

	opPHA = 0x48
	opPHP = 0x08
	opPLA = 0x68
	opPLP = 0x28
	opTSX = 0xBA
	opTXS = 0x9A
)

// regTarget is a tagged variant identifying which 8 bit register an
// addressing-mode-independent load targets. This stands in for the
// pointer-to-register-member plumbing the reference implementation used,
// which Go has no equivalent for (and shouldn't fake with unsafe.Pointer).
type regTarget int

const (
	regA regTarget = iota
	regX
	regY
)

// Chip is a single 6502 core bound to a flat 64KiB memory.Bank.
type Chip struct {
	A  uint8  // Accumulator
	X  uint8  // X index register
	Y  uint8  // Y index register
	SP uint8  // Stack pointer; effective address is always 0x0100|SP.
	P  uint8  // Processor status, packed per the flag masks above.
	PC uint16 // Program counter.

	cycles uint32 // Cycles billed during the in-flight Execute call.

	ram          memory.Bank
	halted       bool
	haltedOpcode uint8
}

// New returns a Chip bound to ram, powered on and reset from the vector at
// RESET_VECTOR. The caller is expected to have already populated ram with a
// program and its reset vector before calling New, or to call Reset again
// after doing so.
func New(ram memory.Bank) *Chip {
	c := &Chip{ram: ram}
	c.ram.PowerOn()
	c.Reset()
	return c
}

// Reset reseeds the Chip the way a hardware reset does: SP=0xFF, all flags
// clear, A/X/Y zeroed, PC loaded from the little-endian word at
// RESET_VECTOR. The cycle counter is untouched here; it's reset at the
// start of every Execute call instead.
func (c *Chip) Reset() {
	c.SP = 0xFF
	c.P = 0
	c.A, c.X, c.Y = 0, 0, 0
	c.halted = false
	c.haltedOpcode = 0
	lo := c.ram.Read(RESET_VECTOR)
	hi := c.ram.Read(RESET_VECTOR + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

// ReadMem peeks a byte directly, bypassing cycle accounting. Intended for
// test fixtures and external drivers inspecting state between Execute
// calls, never for use inside the dispatch loop itself.
func (c *Chip) ReadMem(addr uint16) uint8 {
	return c.ram.Read(addr)
}

// WriteMem pokes a byte directly, bypassing cycle accounting. See ReadMem.
func (c *Chip) WriteMem(addr uint16, val uint8) {
	c.ram.Write(addr, val)
}

// Flag reports whether all bits in mask are set in P.
func (c *Chip) Flag(mask uint8) bool {
	return c.P&mask == mask
}

// SetFlag sets or clears the bits in mask within P.
func (c *Chip) SetFlag(mask uint8, set bool) {
	if set {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

// Halted reports whether the dispatch loop stopped on an unrecognized
// opcode rather than exhausting its instruction budget.
func (c *Chip) Halted() bool {
	return c.halted
}

// HaltedOpcode returns the opcode that halted the Chip, and whether it is
// currently halted at all.
func (c *Chip) HaltedOpcode() (uint8, bool) {
	return c.haltedOpcode, c.halted
}

// Disassemble renders the instruction at addr as mnemonic text, returning
// its length in bytes. It never reads through the cycle-accounted helpers
// and has no effect on Chip state; it exists purely for diagnostics and the
// cmd/ drivers.
func (c *Chip) Disassemble(addr uint16) (string, int) {
	return disassemble.Step(addr, c.ram)
}

// Execute runs up to n instructions (n defaults conceptually to 1; callers
// wanting that default should use Step). The cycle counter is reset to 0
// at the start of the call and its final value is returned. An
// unrecognized opcode halts the loop early without billing anything past
// the opcode fetch; no error is returned for this, by design - callers
// distinguish it via Halted/HaltedOpcode.
func (c *Chip) Execute(n uint64) uint32 {
	c.cycles = 0
	for i := uint64(0); i < n; i++ {
		if !c.step() {
			break
		}
	}
	return c.cycles
}

// Step runs exactly one instruction and returns the cycles consumed. It is
// Execute(1).
func (c *Chip) Step() uint32 {
	return c.Execute(1)
}

// readByte performs an accounted memory read, billing one cycle.
func (c *Chip) readByte(addr uint16) uint8 {
	v := c.ram.Read(addr)
	c.cycles++
	return v
}

// writeByte performs an accounted memory write, billing one cycle.
func (c *Chip) writeByte(addr uint16, val uint8) {
	c.ram.Write(addr, val)
	c.cycles++
}

// fetchByte reads the byte at PC, advances PC, and bills one cycle.
func (c *Chip) fetchByte() uint8 {
	v := c.readByte(c.PC)
	c.PC++
	return v
}

// fetchWord reads a little-endian word starting at PC, advancing PC by 2
// and billing two cycles (one per byte).
func (c *Chip) fetchWord() uint16 {
	lo := uint16(c.fetchByte())
	hi := uint16(c.fetchByte())
	return hi<<8 | lo
}

// pageCrossed reports whether adding idx to base's low byte carries into
// the high byte.
func pageCrossed(base uint16, idx uint8) bool {
	return (base&0xFF)+uint16(idx) > 0xFF
}

// push writes val to the stack page at 0x0100|SP and decrements SP,
// billing one cycle for the write.
func (c *Chip) push(val uint8) {
	c.writeByte(0x0100|uint16(c.SP), val)
	c.SP--
}

// pull bills one cycle for the SP pre-increment, then reads and returns
// the byte at the new stack address (billing a second cycle for the
// read). Used by PLA/PLP, which each do exactly one pull. RTS has its own
// sequence since it folds two pulls around a single pre-increment.
func (c *Chip) pull() uint8 {
	c.cycles++
	c.SP++
	return c.readByte(0x0100 | uint16(c.SP))
}

// setZN sets Z iff v==0 and N iff bit 7 of v is set, leaving other flags
// untouched.
func (c *Chip) setZN(v uint8) {
	c.SetFlag(P_ZERO, v == 0)
	c.SetFlag(P_NEGATIVE, v&0x80 != 0)
}

// loadRegister stores v into the named register and updates Z/N from it.
func (c *Chip) loadRegister(t regTarget, v uint8) {
	switch t {
	case regA:
		c.A = v
	case regX:
		c.X = v
	case regY:
		c.Y = v
	}
	c.setZN(v)
}

// --- Addressing-mode resolvers ---
//
// Each resolver returns an effective address. Where the read and write
// forms differ, the read form (suffixed AddrRead) bills the page-cross
// cycle only when a page is crossed and the write form (suffixed AddrW)
// always bills it. The page-cross and address-settle cycle rules from the
// addressing-mode table are billed inline; the caller bills the final load
// or store itself via readByte/writeByte.

func (c *Chip) addrZPAddr() uint16 {
	return uint16(c.fetchByte())
}

func (c *Chip) addrZPXAddr() uint16 {
	off := c.fetchByte()
	c.cycles++ // address compute
	return uint16(off + c.X)
}

func (c *Chip) addrZPYAddr() uint16 {
	off := c.fetchByte()
	c.cycles++ // address compute
	return uint16(off + c.Y)
}

func (c *Chip) addrAbsAddr() uint16 {
	return c.fetchWord()
}

func (c *Chip) addrAbsXAddrRead() uint16 {
	base := c.fetchWord()
	if pageCrossed(base, c.X) {
		c.cycles++
	}
	return base + uint16(c.X)
}

func (c *Chip) addrAbsXAddrW() uint16 {
	base := c.fetchWord()
	c.cycles++ // address settle, always billed
	return base + uint16(c.X)
}

func (c *Chip) addrAbsYAddrRead() uint16 {
	base := c.fetchWord()
	if pageCrossed(base, c.Y) {
		c.cycles++
	}
	return base + uint16(c.Y)
}

func (c *Chip) addrAbsYAddrW() uint16 {
	base := c.fetchWord()
	c.cycles++ // address settle, always billed
	return base + uint16(c.Y)
}

func (c *Chip) addrIndirectXAddr() uint16 {
	zp := c.fetchByte()
	c.cycles++ // pointer compute
	ptr := zp + c.X
	lo := c.readByte(uint16(ptr))
	hi := c.readByte(uint16(ptr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Chip) addrIndirectYAddrRead() uint16 {
	zp := c.fetchByte()
	lo := c.readByte(uint16(zp))
	hi := c.readByte(uint16(zp + 1))
	base := uint16(hi)<<8 | uint16(lo)
	if pageCrossed(base, c.Y) {
		c.cycles++
	}
	return base + uint16(c.Y)
}

func (c *Chip) addrIndirectYAddrW() uint16 {
	zp := c.fetchByte()
	lo := c.readByte(uint16(zp))
	hi := c.readByte(uint16(zp + 1))
	base := uint16(hi)<<8 | uint16(lo)
	c.cycles++ // address settle, always billed
	return base + uint16(c.Y)
}

// --- Stack/control-flow/transfer operations ---

func (c *Chip) iJSR() {
	lo := c.fetchByte()
	c.cycles++ // internal delay
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC & 0xFF))
	hi := c.fetchByte()
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *Chip) iRTS() {
	c.readByte(c.PC) // dummy read, PC unchanged
	c.cycles++       // SP pre-increment
	c.SP++
	lo := c.readByte(0x0100 | uint16(c.SP))
	c.SP++
	hi := c.readByte(0x0100 | uint16(c.SP))
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.cycles++ // final PC adjustment
	c.PC++
}

func (c *Chip) iJMPAbs() {
	c.PC = c.fetchWord()
}

func (c *Chip) iJMPIndirect() {
	ptr := c.fetchWord()
	lo := c.readByte(ptr)
	var hiAddr uint16
	if ptr&0xFF == 0xFF {
		hiAddr = ptr & 0xFF00 // the page-boundary bug: wraps within the same page
	} else {
		hiAddr = ptr + 1
	}
	hi := c.readByte(hiAddr)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *Chip) iPHA() {
	c.readByte(c.PC) // dummy read, PC unchanged
	c.push(c.A)
}

func (c *Chip) iPHP() {
	c.readByte(c.PC) // dummy read, PC unchanged
	c.push(c.P)
}

func (c *Chip) iPLA() {
	c.readByte(c.PC) // dummy read, PC unchanged
	v := c.pull()
	c.A = v
	c.setZN(v)
}

func (c *Chip) iPLP() {
	c.readByte(c.PC) // dummy read, PC unchanged
	c.P = c.pull() &^ P_UNUSED
}

func (c *Chip) iTSX() {
	c.readByte(c.PC) // dummy read, PC unchanged
	c.X = c.SP
	c.setZN(c.X)
}

func (c *Chip) iTXS() {
	c.readByte(c.PC) // dummy read, PC unchanged
	c.SP = c.X
}

// step executes a single instruction and reports whether it completed
// (false means the opcode fetched was unrecognized and the Chip is now
// halted).
func (c *Chip) step() bool {
	if c.halted {
		return false
	}
	op := c.fetchByte()
	switch op {
	case opLDA_IM:
		c.loadRegister(regA, c.fetchByte())
	case opLDA_ZP:
		c.loadRegister(regA, c.readByte(c.addrZPAddr()))
	case opLDA_ZPX:
		c.loadRegister(regA, c.readByte(c.addrZPXAddr()))
	case opLDA_ABS:
		c.loadRegister(regA, c.readByte(c.addrAbsAddr()))
	case opLDA_ABSX:
		c.loadRegister(regA, c.readByte(c.addrAbsXAddrRead()))
	case opLDA_ABSY:
		c.loadRegister(regA, c.readByte(c.addrAbsYAddrRead()))
	case opLDA_XIND:
		c.loadRegister(regA, c.readByte(c.addrIndirectXAddr()))
	case opLDA_INDY:
		c.loadRegister(regA, c.readByte(c.addrIndirectYAddrRead()))

	case opLDX_IM:
		c.loadRegister(regX, c.fetchByte())
	case opLDX_ZP:
		c.loadRegister(regX, c.readByte(c.addrZPAddr()))
	case opLDX_ZPY:
		c.loadRegister(regX, c.readByte(c.addrZPYAddr()))
	case opLDX_ABS:
		c.loadRegister(regX, c.readByte(c.addrAbsAddr()))
	case opLDX_ABSY:
		c.loadRegister(regX, c.readByte(c.addrAbsYAddrRead()))

	case opLDY_IM:
		c.loadRegister(regY, c.fetchByte())
	case opLDY_ZP:
		c.loadRegister(regY, c.readByte(c.addrZPAddr()))
	case opLDY_ZPX:
		c.loadRegister(regY, c.readByte(c.addrZPXAddr()))
	case opLDY_ABS:
		c.loadRegister(regY, c.readByte(c.addrAbsAddr()))
	case opLDY_ABSX:
		c.loadRegister(regY, c.readByte(c.addrAbsXAddrRead()))

	case opSTA_ZP:
		c.writeByte(c.addrZPAddr(), c.A)
	case opSTA_ZPX:
		c.writeByte(c.addrZPXAddr(), c.A)
	case opSTA_ABS:
		c.writeByte(c.addrAbsAddr(), c.A)
	case opSTA_ABSX:
		c.writeByte(c.addrAbsXAddrW(), c.A)
	case opSTA_ABSY:
		c.writeByte(c.addrAbsYAddrW(), c.A)
	case opSTA_XIND:
		c.writeByte(c.addrIndirectXAddr(), c.A)
	case opSTA_INDY:
		c.writeByte(c.addrIndirectYAddrW(), c.A)

	case opSTX_ZP:
		c.writeByte(c.addrZPAddr(), c.X)
	case opSTX_ZPY:
		c.writeByte(c.addrZPYAddr(), c.X)
	case opSTX_ABS:
		c.writeByte(c.addrAbsAddr(), c.X)

	case opSTY_ZP:
		c.writeByte(c.addrZPAddr(), c.Y)
	case opSTY_ZPX:
		c.writeByte(c.addrZPXAddr(), c.Y)
	case opSTY_ABS:
		c.writeByte(c.addrAbsAddr(), c.Y)

	case opAND_IM:
		c.A &= c.fetchByte()
		c.setZN(c.A)
	case opAND_ZP:
		c.A &= c.readByte(c.addrZPAddr())
		c.setZN(c.A)
	case opAND_ZPX:
		c.A &= c.readByte(c.addrZPXAddr())
		c.setZN(c.A)
	case opAND_ABS:
		c.A &= c.readByte(c.addrAbsAddr())
		c.setZN(c.A)
	case opAND_ABSX:
		c.A &= c.readByte(c.addrAbsXAddrRead())
		c.setZN(c.A)
	case opAND_ABSY:
		c.A &= c.readByte(c.addrAbsYAddrRead())
		c.setZN(c.A)
	case opAND_XIND:
		c.A &= c.readByte(c.addrIndirectXAddr())
		c.setZN(c.A)
	case opAND_INDY:
		c.A &= c.readByte(c.addrIndirectYAddrRead())
		c.setZN(c.A)

	case opORA_IM:
		c.A |= c.fetchByte()
		c.setZN(c.A)
	case opORA_ZP:
		c.A |= c.readByte(c.addrZPAddr())
		c.setZN(c.A)
	case opORA_ZPX:
		c.A |= c.readByte(c.addrZPXAddr())
		c.setZN(c.A)
	case opORA_ABS:
		c.A |= c.readByte(c.addrAbsAddr())
		c.setZN(c.A)
	case opORA_ABSX:
		c.A |= c.readByte(c.addrAbsXAddrRead())
		c.setZN(c.A)
	case opORA_ABSY:
		c.A |= c.readByte(c.addrAbsYAddrRead())
		c.setZN(c.A)
	case opORA_XIND:
		c.A |= c.readByte(c.addrIndirectXAddr())
		c.setZN(c.A)
	case opORA_INDY:
		c.A |= c.readByte(c.addrIndirectYAddrRead())
		c.setZN(c.A)

	case opEOR_IM:
		c.A ^= c.fetchByte()
		c.setZN(c.A)
	case opEOR_ZP:
		c.A ^= c.readByte(c.addrZPAddr())
		c.setZN(c.A)
	case opEOR_ZPX:
		c.A ^= c.readByte(c.addrZPXAddr())
		c.setZN(c.A)
	case opEOR_ABS:
		c.A ^= c.readByte(c.addrAbsAddr())
		c.setZN(c.A)
	case opEOR_ABSX:
		c.A ^= c.readByte(c.addrAbsXAddrRead())
		c.setZN(c.A)
	case opEOR_ABSY:
		c.A ^= c.readByte(c.addrAbsYAddrRead())
		c.setZN(c.A)
	case opEOR_XIND:
		c.A ^= c.readByte(c.addrIndirectXAddr())
		c.setZN(c.A)
	case opEOR_INDY:
		c.A ^= c.readByte(c.addrIndirectYAddrRead())
		c.setZN(c.A)

	case opJSR:
		c.iJSR()
	case opRTS:
		c.iRTS()
	case opJMP_ABS:
		c.iJMPAbs()
	case opJMP_IND:
		c.iJMPIndirect()
	case opPHA:
		c.iPHA()
	case opPHP:
		c.iPHP()
	case opPLA:
		c.iPLA()
	case opPLP:
		c.iPLP()
	case opTSX:
		c.iTSX()
	case opTXS:
		c.iTXS()

	default:
		c.halted = true
		c.haltedOpcode = op
		return false
	}
	return true
}
