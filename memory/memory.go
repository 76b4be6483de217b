// Package memory defines the flat 64 KiB address space the 6502 core
// operates against. Unlike a multi-chip machine (which needs a Bank
// hierarchy to decode peripheral address ranges and snapshot databus
// state) this core only ever drives a single linear RAM bank, so the
// interface is kept to the minimum the cpu package actually depends on.
package memory

import "fmt"

// Size is the full 16-bit address space of the 6502.
const Size = 1 << 16

// Bank is the memory interface the cpu package depends on. A Bank is
// addressed by the full 16-bit space; wrapping indexed addresses to fit
// (zero page wrap, page-boundary bugs, etc) is the caller's job, not the
// Bank's.
type Bank interface {
	// Read returns the byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with val.
	Write(addr uint16, val uint8)
	// PowerOn resets the bank to its power-on state.
	PowerOn()
}

// ErrInvalidSize is returned by New when asked to build a bank of a size
// that isn't a power of two, or that exceeds the 64 KiB address space.
type ErrInvalidSize struct {
	Size int
}

// Error implements the error interface.
func (e ErrInvalidSize) Error() string {
	return fmt.Sprintf("invalid memory size: %d must be a power of 2 and no larger than %d", e.Size, Size)
}

// flat implements Bank as a single contiguous byte array.
type flat struct {
	ram []uint8
}

// New creates a flat RAM bank of the given size, zero-filled. Size must be
// a power of 2 and no larger than 64 KiB. Most callers want the full
// address space via New64K.
func New(size int) (Bank, error) {
	if size <= 0 || size&(size-1) != 0 || size > Size {
		return nil, ErrInvalidSize{size}
	}
	return &flat{ram: make([]uint8, size)}, nil
}

// New64K creates the standard fully-populated 64 KiB address space the
// core expects.
func New64K() Bank {
	b, err := New(Size)
	if err != nil {
		// Size is a compile-time constant power of 2; this can't happen.
		panic(err)
	}
	return b
}

// Read implements Bank. The address is masked to the bank's length so a
// smaller-than-64K bank aliases rather than panicking.
func (f *flat) Read(addr uint16) uint8 {
	return f.ram[int(addr)&(len(f.ram)-1)]
}

// Write implements Bank.
func (f *flat) Write(addr uint16, val uint8) {
	f.ram[int(addr)&(len(f.ram)-1)] = val
}

// PowerOn implements Bank, zeroing the bank. Real hardware RAM powers on
// to indeterminate contents; this core's callers pre-populate memory
// (program, vectors, fixtures) before reset, so a deterministic zero-fill
// keeps every run reproducible rather than emulating power-on noise.
func (f *flat) PowerOn() {
	for i := range f.ram {
		f.ram[i] = 0
	}
}
