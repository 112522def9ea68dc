package sequencer

import (
	"fmt"
	"log"

	"github.com/soclab/emifup/emif"
	"github.com/soclab/emifup/scratch"
)

// A Controller owns the authoritative calibration state for one bring-up run.
// It initializes the sequencer, fills in the memory descriptor, and
// re-triggers calibration under the defined conditions.
type Controller struct {
	Seq Sequencer
	Pad *scratch.Pad
	Log *log.Logger
}

// Initialize brings the sequencer up with PLL-lock polling enabled, then
// queries technology, size and ECC capability into the returned descriptor.
// Any failing call aborts bring-up.
func (c *Controller) Initialize(topo *emif.Topology) (*emif.MemoryDescriptor, error) {
	desc, err := c.Seq.Init(topo, InitOptions{WaitPLLLock: true})
	if err != nil {
		return nil, fmt.Errorf("%w: init: %v", ErrQueryFailed, err)
	}

	desc.Technology, err = c.Seq.Technology(topo)
	if err != nil {
		return nil, fmt.Errorf("%w: technology: %v", ErrQueryFailed, err)
	}

	desc.SizeGb, err = c.Seq.WidthAndSize(topo)
	if err != nil {
		return nil, fmt.Errorf("%w: width and size: %v", ErrQueryFailed, err)
	}

	desc.ECCCapable, err = c.Seq.ECCCapability(topo)
	if err != nil {
		return nil, fmt.Errorf("%w: ecc capability: %v", ErrQueryFailed, err)
	}

	c.Log.Printf("DDR: %s, %d Gb, ECC capable: %v, calibrated: %v",
		desc.Technology, desc.SizeGb, desc.ECCCapable, desc.Calibrated)

	return desc, nil
}

// EnsureCalibrated re-triggers calibration when the DRAM double-bit-error
// marker demands it or when initialization left the aggregate status false.
// One blocking re-calibration attempt is made; its result is final.
func (c *Controller) EnsureCalibrated(topo *emif.Topology, desc *emif.MemoryDescriptor) error {
	if c.Pad.DRAMDoubleBitError() {
		c.Log.Printf("DDR: DRAM double-bit error recorded, forcing re-calibration")
		for _, inst := range topo.Instances {
			inst.CalStatus = false
		}
		desc.Calibrated = false
	}

	if desc.Calibrated {
		return nil
	}

	c.Log.Printf("DDR: re-calibration in progress...")
	ok, err := c.Seq.Recalibrate(topo)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCalibrationFailed, err)
	}
	if !ok {
		return ErrCalibrationFailed
	}

	for _, inst := range topo.Instances {
		inst.CalStatus = true
	}
	desc.Calibrated = true
	c.Log.Printf("DDR: calibration success")

	return nil
}

// FullMemInit runs the destructive full-memory initialization pass.
func (c *Controller) FullMemInit(topo *emif.Topology) error {
	if err := c.Seq.FullMemInit(topo); err != nil {
		return fmt.Errorf("%w: %v", ErrFullInitFailed, err)
	}
	return nil
}
