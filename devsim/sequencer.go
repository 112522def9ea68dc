package devsim

import (
	"github.com/soclab/emifup/emif"
	"github.com/soclab/emifup/sequencer"
)

// A ScriptedSequencer is a deterministic stand-in for the hardware
// calibration engine. Canned responses are set up front; calls are counted so
// tests and the simulator can assert on them.
type ScriptedSequencer struct {
	Tech       string
	SizeGb     uint64
	ECCCapable bool

	// InitCalOK is the calibration result Init reports. Recal holds the
	// outcome of each successive Recalibrate call; calls beyond the scripted
	// ones succeed.
	InitCalOK bool
	Recal     []bool

	// Error injection, one per fallible call.
	InitErr     error
	TechErr     error
	SizeErr     error
	ECCErr      error
	RecalErr    error
	FullInitErr error

	// DRAM, when set, is scrubbed by FullMemInit.
	DRAM *Storage

	InitCalls     int
	RecalCalls    int
	FullInitCalls int
	LastInitOpts  sequencer.InitOptions
}

var _ sequencer.Sequencer = (*ScriptedSequencer)(nil)

// Init implements sequencer.Sequencer.
func (s *ScriptedSequencer) Init(topo *emif.Topology, opts sequencer.InitOptions) (*emif.MemoryDescriptor, error) {
	s.InitCalls++
	s.LastInitOpts = opts

	if s.InitErr != nil {
		return nil, s.InitErr
	}

	for _, inst := range topo.Instances {
		inst.CalStatus = s.InitCalOK
	}

	return &emif.MemoryDescriptor{Calibrated: s.InitCalOK}, nil
}

// Recalibrate implements sequencer.Sequencer.
func (s *ScriptedSequencer) Recalibrate(topo *emif.Topology) (bool, error) {
	s.RecalCalls++

	if s.RecalErr != nil {
		return false, s.RecalErr
	}

	ok := true
	if s.RecalCalls <= len(s.Recal) {
		ok = s.Recal[s.RecalCalls-1]
	}

	for _, inst := range topo.Instances {
		inst.CalStatus = ok
	}

	return ok, nil
}

// Technology implements sequencer.Sequencer.
func (s *ScriptedSequencer) Technology(topo *emif.Topology) (string, error) {
	if s.TechErr != nil {
		return "", s.TechErr
	}
	return s.Tech, nil
}

// WidthAndSize implements sequencer.Sequencer.
func (s *ScriptedSequencer) WidthAndSize(topo *emif.Topology) (uint64, error) {
	if s.SizeErr != nil {
		return 0, s.SizeErr
	}
	return s.SizeGb, nil
}

// ECCCapability implements sequencer.Sequencer.
func (s *ScriptedSequencer) ECCCapability(topo *emif.Topology) (bool, error) {
	if s.ECCErr != nil {
		return false, s.ECCErr
	}
	return s.ECCCapable, nil
}

// FullMemInit implements sequencer.Sequencer.
func (s *ScriptedSequencer) FullMemInit(topo *emif.Topology) error {
	s.FullInitCalls++

	if s.FullInitErr != nil {
		return s.FullInitErr
	}

	if s.DRAM != nil {
		s.DRAM.Scrub()
	}

	return nil
}
