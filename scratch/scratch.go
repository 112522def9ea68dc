// Package scratch models the persistent boot scratch registers. The scratch
// bits outlive a warm or cold reset but not a power cycle (POR domain) or, for
// the cold-domain register, survive everything but power loss. The bring-up
// orchestrator receives the scratch pad as an explicit capability so tests
// can substitute a fake.
package scratch

// A Register identifies one persistent scratch register.
type Register int

const (
	// BootScratchPOR0 lives in the power-on-reset domain. It carries the
	// bring-up progress marker.
	BootScratchPOR0 Register = iota

	// BootScratchCold3 lives in the cold domain. It carries the reset-cause
	// field and the ECC double-bit-error markers.
	BootScratchCold3
)

// Bit assignments inside the scratch registers.
const (
	// ProgressMask marks "bring-up in progress" in BootScratchPOR0. Set when
	// the orchestrator starts, cleared only on success, so a subsequent boot
	// can detect a hung prior run.
	ProgressMask uint32 = 1 << 0

	// OCRAMDBEMask and DRAMDBEMask record double-bit ECC errors observed
	// before the reset, in BootScratchCold3.
	OCRAMDBEMask uint32 = 1 << 5
	DRAMDBEMask  uint32 = 1 << 6
)

// Registers is the raw persistent scratch access capability. Register access
// is infallible.
type Registers interface {
	Read(reg Register) uint32

	// WriteBits replaces the masked bits of reg with the masked bits of
	// value, leaving the rest of the register untouched.
	WriteBits(reg Register, mask, value uint32)
}

// A Pad interprets the scratch registers. All methods are thin wrappers over
// the raw capability; the bit layout above is the contract.
type Pad struct {
	Regs Registers
}

// ResetCauseRegister returns the raw cold-domain register holding the
// reset-cause field.
func (p *Pad) ResetCauseRegister() uint32 {
	return p.Regs.Read(BootScratchCold3)
}

// InProgress reports whether a prior bring-up run set the progress marker and
// never cleared it.
func (p *Pad) InProgress() bool {
	return p.Regs.Read(BootScratchPOR0)&ProgressMask != 0
}

// SetInProgress sets or clears the progress marker.
func (p *Pad) SetInProgress(start bool) {
	if start {
		p.Regs.WriteBits(BootScratchPOR0, ProgressMask, ProgressMask)
	} else {
		p.Regs.WriteBits(BootScratchPOR0, ProgressMask, 0)
	}
}

// OCRAMDoubleBitError reports the on-chip-RAM double-bit-error marker.
func (p *Pad) OCRAMDoubleBitError() bool {
	return p.Regs.Read(BootScratchCold3)&OCRAMDBEMask != 0
}

// DRAMDoubleBitError reports the DRAM double-bit-error marker.
func (p *Pad) DRAMDoubleBitError() bool {
	return p.Regs.Read(BootScratchCold3)&DRAMDBEMask != 0
}
