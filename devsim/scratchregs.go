package devsim

import (
	"github.com/soclab/emifup/reset"
	"github.com/soclab/emifup/scratch"
)

// ScratchRegs simulates the persistent boot scratch registers. Values survive
// warm and cold resets; only a power cycle clears them, matching the scratch
// domains of the real part.
type ScratchRegs struct {
	regs map[scratch.Register]uint32
}

// NewScratchRegs creates scratch registers in their power-on state.
func NewScratchRegs() *ScratchRegs {
	return &ScratchRegs{regs: make(map[scratch.Register]uint32)}
}

// Read implements scratch.Registers.
func (s *ScratchRegs) Read(reg scratch.Register) uint32 {
	return s.regs[reg]
}

// WriteBits implements scratch.Registers.
func (s *ScratchRegs) WriteBits(reg scratch.Register, mask, value uint32) {
	s.regs[reg] = (s.regs[reg] &^ mask) | (value & mask)
}

// PowerCycle clears every scratch register, as a power loss would.
func (s *ScratchRegs) PowerCycle() {
	s.regs = make(map[scratch.Register]uint32)
}

// SetResetCause stages the reset-cause field the next boot will observe. A
// power-on cause also clears the scratch domains first, in that order, so the
// recorded cause itself survives.
func (s *ScratchRegs) SetResetCause(c reset.Cause) {
	if c == reset.PowerOn {
		s.PowerCycle()
	}
	s.WriteBits(scratch.BootScratchCold3, reset.CauseMask, reset.Encode(c))
}

// MarkOCRAMDBE records an on-chip-RAM double-bit error.
func (s *ScratchRegs) MarkOCRAMDBE() {
	s.WriteBits(scratch.BootScratchCold3, scratch.OCRAMDBEMask, scratch.OCRAMDBEMask)
}

// MarkDRAMDBE records a DRAM double-bit error.
func (s *ScratchRegs) MarkDRAMDBE() {
	s.WriteBits(scratch.BootScratchCold3, scratch.DRAMDBEMask, scratch.DRAMDBEMask)
}
