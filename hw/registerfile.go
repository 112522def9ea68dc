package hw

// A RegisterFile is a sparse, map-backed RegisterSpace. It backs the
// simulated platform and the unit tests; reads of never-written registers
// return zero, like hardware registers out of reset.
type RegisterFile struct {
	regs map[uint64]uint32
}

// NewRegisterFile creates an empty register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{regs: make(map[uint64]uint32)}
}

// Read32 returns the register value at addr, zero if never written.
func (f *RegisterFile) Read32(addr uint64) uint32 {
	return f.regs[addr]
}

// Write32 stores val at addr.
func (f *RegisterFile) Write32(addr uint64, val uint32) {
	f.regs[addr] = val
}

// Clear resets every register to zero.
func (f *RegisterFile) Clear() {
	f.regs = make(map[uint64]uint32)
}
