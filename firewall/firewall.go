// Package firewall issues the final protection-register writes that put the
// memory fabric behind the firewall once geometry and calibration are
// confirmed.
package firewall

import (
	"log"

	"github.com/soclab/emifup/geometry"
	"github.com/soclab/emifup/hw"
)

// Per-bank firewall enable registers, one per physical bank window, in the
// same order as the bank table.
var bankEnableAddrs = [geometry.MaxBankCount]uint64{
	0x18000c00,
	0x18000c04,
	0x18000c08,
}

// Memory-fabric control-block firewall enables. Always programmed, regardless
// of how many banks are populated.
const (
	io96b0CSREnable uint64 = 0x18000d00
	io96b1CSREnable uint64 = 0x18000d04
	nocCSREnable    uint64 = 0x18000d08
)

const enable uint32 = 0x1

// An Activator programs the memory firewall. Register writes are assumed to
// always complete; there is no failure path.
type Activator struct {
	Regs hw.RegisterSpace
	Log  *log.Logger
}

// Enable opens the firewall for every populated bank region and for the
// memory-fabric control blocks.
func (a *Activator) Enable(regions []geometry.Region) {
	for i := range regions {
		a.Regs.Write32(bankEnableAddrs[i], enable)
	}

	a.Regs.Write32(io96b0CSREnable, enable)
	a.Regs.Write32(io96b1CSREnable, enable)
	a.Regs.Write32(nocCSREnable, enable)

	a.Log.Printf("DDR: firewall init success")
}
