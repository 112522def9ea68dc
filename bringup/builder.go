package bringup

import (
	"log"
	"os"

	"github.com/soclab/emifup/firewall"
	"github.com/soclab/emifup/geometry"
	"github.com/soclab/emifup/handoff"
	"github.com/soclab/emifup/hw"
	"github.com/soclab/emifup/scratch"
	"github.com/soclab/emifup/sequencer"
	"github.com/soclab/emifup/sideband"
)

// Builder can build bring-up orchestrators.
type Builder struct {
	regs     hw.RegisterSpace
	scratch  scratch.Registers
	blob     handoff.BlobReader
	profiles sideband.ProfileActivator
	seq      sequencer.Sequencer
	board    BoardDescriptor
	logger   *log.Logger
	hooks    []Hook

	banks          [geometry.MaxBankCount]geometry.Bank
	requestedBanks int
}

// MakeBuilder creates a builder with the default bank table and logger.
func MakeBuilder() Builder {
	return Builder{
		logger:         log.New(os.Stderr, "", 0),
		banks:          geometry.DefaultBanks,
		requestedBanks: geometry.MaxBankCount,
	}
}

// WithRegisters sets the memory-mapped register capability.
func (b Builder) WithRegisters(r hw.RegisterSpace) Builder {
	b.regs = r
	return b
}

// WithScratch sets the persistent scratch register capability.
func (b Builder) WithScratch(s scratch.Registers) Builder {
	b.scratch = s
	return b
}

// WithHandoffReader sets the firmware handoff blob reader.
func (b Builder) WithHandoffReader(r handoff.BlobReader) Builder {
	b.blob = r
	return b
}

// WithProfileActivator sets the hardware-configuration profile activator.
func (b Builder) WithProfileActivator(p sideband.ProfileActivator) Builder {
	b.profiles = p
	return b
}

// WithSequencer sets the hardware calibration sequencer.
func (b Builder) WithSequencer(s sequencer.Sequencer) Builder {
	b.seq = s
	return b
}

// WithBoardDescriptor sets the board descriptor.
func (b Builder) WithBoardDescriptor(d BoardDescriptor) Builder {
	b.board = d
	return b
}

// WithLogger sets the logger shared by all components.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// WithBankTable replaces the default physical bank table.
func (b Builder) WithBankTable(banks [geometry.MaxBankCount]geometry.Bank) Builder {
	b.banks = banks
	return b
}

// WithRequestedBankCount sets how many banks the configuration asks for. The
// reconciler caps it at the physical maximum.
func (b Builder) WithRequestedBankCount(n int) Builder {
	b.requestedBanks = n
	return b
}

// WithHook registers a hook on the orchestrator being built.
func (b Builder) WithHook(h Hook) Builder {
	b.hooks = append(b.hooks, h)
	return b
}

// Build assembles the orchestrator. Missing collaborators are programmer
// errors.
func (b Builder) Build(name string) *Orchestrator {
	switch {
	case b.regs == nil:
		log.Panic("bringup: builder needs a register space")
	case b.scratch == nil:
		log.Panic("bringup: builder needs scratch registers")
	case b.blob == nil:
		log.Panic("bringup: builder needs a handoff reader")
	case b.profiles == nil:
		log.Panic("bringup: builder needs a profile activator")
	case b.seq == nil:
		log.Panic("bringup: builder needs a sequencer")
	case b.board == nil:
		log.Panic("bringup: builder needs a board descriptor")
	}

	pad := &scratch.Pad{Regs: b.scratch}

	o := &Orchestrator{
		name: name,
		log:  b.logger,
		pad:  pad,
		blob: b.blob,
		side: &sideband.Configurator{
			Regs:     b.regs,
			Profiles: b.profiles,
			Log:      b.logger,
		},
		cal: &sequencer.Controller{
			Seq: b.seq,
			Pad: pad,
			Log: b.logger,
		},
		fw: &firewall.Activator{
			Regs: b.regs,
			Log:  b.logger,
		},
		board:          b.board,
		banks:          b.banks,
		requestedBanks: b.requestedBanks,
	}

	for _, h := range b.hooks {
		o.AcceptHook(h)
	}

	return o
}
