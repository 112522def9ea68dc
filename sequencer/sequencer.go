// Package sequencer drives the hardware memory sequencer through
// initialization and calibration. The sequencer itself lives behind the
// Sequencer interface: the real implementation is a mailbox protocol out of
// scope here, and tests substitute a mock.
package sequencer

import (
	"errors"

	"github.com/soclab/emifup/emif"
)

// Errors surfaced to the orchestrator. Every one of them is fatal to the
// boot attempt.
var (
	// ErrQueryFailed reports a failed sequencer query for memory technology,
	// width/size, or ECC capability.
	ErrQueryFailed = errors.New("sequencer query failed")

	// ErrCalibrationFailed reports that calibration did not converge even
	// after the one re-calibration attempt.
	ErrCalibrationFailed = errors.New("memory calibration failed")

	// ErrFullInitFailed reports a failed full-memory initialization pass.
	ErrFullInitFailed = errors.New("full memory initialization failed")
)

// InitOptions carries the policy flags for sequencer initialization.
type InitOptions struct {
	// WaitPLLLock makes initialization poll until the clock-generator PLL
	// reports lock before touching the calibration engine.
	WaitPLLLock bool
}

// A Sequencer is the hardware calibration engine collaborator. Blocking calls
// are synchronous polling loops with platform-defined timeouts; a timeout
// surfaces as an error.
type Sequencer interface {
	// Init brings the sequencer up and returns the aggregate memory
	// descriptor with the initial calibration status. It also records the
	// per-instance calibration results on the topology.
	Init(topo *emif.Topology, opts InitOptions) (*emif.MemoryDescriptor, error)

	// Recalibrate re-runs calibration on every enabled instance and reports
	// the new aggregate status.
	Recalibrate(topo *emif.Topology) (bool, error)

	// Technology reports the kind of DRAM behind the controllers.
	Technology(topo *emif.Topology) (string, error)

	// WidthAndSize reports the overall memory size in gigabits.
	WidthAndSize(topo *emif.Topology) (uint64, error)

	// ECCCapability reports whether the fitted memory is ECC-capable.
	ECCCapability(topo *emif.Topology) (bool, error)

	// FullMemInit runs the destructive full-memory initialization pass.
	FullMemInit(topo *emif.Topology) error
}
