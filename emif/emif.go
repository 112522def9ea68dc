// Package emif holds the data model shared by the EMIF bring-up components:
// the controller topology discovered from the firmware handoff, the
// per-instance calibration state, and the aggregate memory descriptor
// reported by the hardware sequencer.
package emif

// MaxInstances is the number of EMIF controller instances the platform can
// carry. The handoff can enable one or both.
const MaxInstances = 2

// CSRBaseAddrs lists the control-register base address of each controller
// instance. The addresses are fixed by the physical memory map.
var CSRBaseAddrs = [MaxInstances]uint64{
	0x18400000, // instance 0 CSR registers
	0x18800000, // instance 1 CSR registers
}

// An Instance is one EMIF controller instance. CalStatus is owned by the
// calibration controller and flips as calibration results arrive.
type Instance struct {
	CSRAddr   uint64
	CalStatus bool
}

// A Topology describes the controller configuration discovered from the
// firmware handoff table. It is read-only after the handoff is parsed, except
// for the per-instance calibration status.
type Topology struct {
	NumPorts      int
	NumInstances  int
	PLLEnableMask uint32
	Instances     []*Instance
}

// DualPort reports whether both controller ports are enabled.
func (t *Topology) DualPort() bool {
	return t.NumPorts == 2
}

// DualInstance reports whether both controller instances are enabled.
func (t *Topology) DualInstance() bool {
	return t.NumInstances == 2
}

// A MemoryDescriptor aggregates what the sequencer reports about the memory
// behind all enabled instances. It is filled in progressively: Init sets the
// calibration status, the technology and size queries fill the rest.
//
// Invariant: Calibrated is true iff every Instance.CalStatus is true.
type MemoryDescriptor struct {
	Technology string
	SizeGb     uint64
	ECCCapable bool
	Calibrated bool
}

// TotalBytes converts the sequencer-reported size in gigabits to bytes.
func (d *MemoryDescriptor) TotalBytes() uint64 {
	return d.SizeGb * (1 << 30) / 8
}
