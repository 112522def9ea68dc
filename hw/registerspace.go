// Package hw provides the memory-mapped register access capability used by
// the bring-up components, together with the bitfield helpers the register
// layouts are written in.
package hw

// A RegisterSpace gives access to 32-bit memory-mapped registers. Register
// writes never fail; a bad address is a programmer error.
type RegisterSpace interface {
	Read32(addr uint64) uint32
	Write32(addr uint64, val uint32)
}

// SetBits32 sets the masked bits of the register at addr.
func SetBits32(r RegisterSpace, addr uint64, mask uint32) {
	r.Write32(addr, r.Read32(addr)|mask)
}

// ClearBits32 clears the masked bits of the register at addr.
func ClearBits32(r RegisterSpace, addr uint64, mask uint32) {
	r.Write32(addr, r.Read32(addr)&^mask)
}

// Bit returns a mask with bit n set.
func Bit(n uint) uint32 {
	return 1 << n
}

// GenMask returns a mask covering bits hi down to lo, inclusive.
func GenMask(hi, lo uint) uint32 {
	if hi < lo || hi > 31 {
		panic("hw: invalid mask range")
	}
	return (0xffffffff >> (31 - hi)) &^ (1<<lo - 1)
}

// FieldGet extracts the field selected by mask from reg, shifted down so the
// field's lowest bit lands at bit 0.
func FieldGet(mask, reg uint32) uint32 {
	if mask == 0 {
		panic("hw: empty field mask")
	}
	shift := uint(0)
	for mask&(1<<shift) == 0 {
		shift++
	}
	return (reg & mask) >> shift
}
