// Package devsim is a simulated platform for exercising the memory bring-up
// without hardware: a register file, persistent scratch registers, a sparse
// DRAM model, a scripted calibration sequencer, and synthesized firmware
// tables.
package devsim

import (
	"errors"
	"fmt"

	"github.com/soclab/emifup/handoff"
	"github.com/soclab/emifup/hw"
	"github.com/soclab/emifup/sideband"
)

// Config shapes a simulated platform.
type Config struct {
	DualPort bool
	DualEMIF bool
	PLLMask  uint32

	Technology string
	SizeGb     uint64
	ECCCapable bool

	// InitCalOK is the first calibration outcome; Recal scripts the outcomes
	// of successive re-calibrations (unscripted calls succeed).
	InitCalOK bool
	Recal     []bool

	// DeclaredBytes is what the synthesized board descriptor claims; zero
	// defers to hardware.
	DeclaredBytes uint64

	// FailHandoff makes the handoff table unreadable.
	FailHandoff bool

	// DropProfiles removes the interconnect configuration profiles, so
	// activation fails.
	DropProfiles bool
}

// MakeDefaultConfig returns a single-port, single-EMIF, ECC-capable 4 GiB
// platform that calibrates on the first try.
func MakeDefaultConfig() Config {
	return Config{
		PLLMask:    0x1,
		Technology: "DDR5",
		SizeGb:     32, // 32 Gb == 4 GiB
		ECCCapable: true,
		InitCalOK:  true,
	}
}

// A Platform wires the simulated devices together. The same Platform can run
// several boots in sequence; scratch contents persist the way the hardware's
// would.
type Platform struct {
	Regs    *hw.RegisterFile
	Scratch *ScratchRegs
	DRAM    *Storage
	Seq     *ScriptedSequencer
	DTB     []byte

	handoffTable []uint32
	profiles     map[string]bool
	failHandoff  bool

	// Activated lists every profile activation, in order.
	Activated []string
}

// NewPlatform builds a simulated platform from the config.
func NewPlatform(cfg Config) *Platform {
	dram := NewStorage(cfg.SizeGb * (1 << 30) / 8)

	table := make([]uint32, handoff.TableWords)
	var portEMIF uint32
	if cfg.DualPort {
		portEMIF |= 1 << 0
	}
	if cfg.DualEMIF {
		portEMIF |= 1 << 1
	}
	portEMIF |= (cfg.PLLMask & 0xf) << 16
	table[4] = portEMIF

	profiles := map[string]bool{
		sideband.ProfileInterleavingOn:  true,
		sideband.ProfileInterleavingOff: true,
	}
	if cfg.DropProfiles {
		profiles = map[string]bool{}
	}

	return &Platform{
		Regs:    hw.NewRegisterFile(),
		Scratch: NewScratchRegs(),
		DRAM:    dram,
		Seq: &ScriptedSequencer{
			Tech:       cfg.Technology,
			SizeGb:     cfg.SizeGb,
			ECCCapable: cfg.ECCCapable,
			InitCalOK:  cfg.InitCalOK,
			Recal:      cfg.Recal,
			DRAM:       dram,
		},
		DTB:          SynthDTB(0x80000000, cfg.DeclaredBytes),
		handoffTable: table,
		profiles:     profiles,
		failHandoff:  cfg.FailHandoff,
	}
}

// ReadBlob implements handoff.BlobReader.
func (p *Platform) ReadBlob(id handoff.ID, words int) ([]uint32, error) {
	if p.failHandoff {
		return nil, errors.New("handoff region not populated")
	}
	if id != handoff.TableSDRAM {
		return nil, fmt.Errorf("unknown handoff table %d", id)
	}
	if words > len(p.handoffTable) {
		words = len(p.handoffTable)
	}

	table := make([]uint32, words)
	copy(table, p.handoffTable)
	return table, nil
}

// Activate implements sideband.ProfileActivator.
func (p *Platform) Activate(name string) error {
	if !p.profiles[name] {
		return fmt.Errorf("no such profile %q", name)
	}
	p.Activated = append(p.Activated, name)
	return nil
}
