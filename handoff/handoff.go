// Package handoff reads the firmware-provided configuration table that
// describes the EMIF controller topology.
package handoff

import (
	"errors"
	"fmt"
	"log"

	"github.com/soclab/emifup/emif"
	"github.com/soclab/emifup/hw"
)

// An ID names one firmware handoff table.
type ID int

// TableSDRAM is the SDRAM configuration handoff table.
const TableSDRAM ID = iota

// TableWords is the fixed length of the SDRAM handoff table, in 32-bit words.
const TableWords = 8

// Field layout of the port/EMIF configuration word. These offsets and bit
// positions are a firmware contract and must stay bit-exact.
const (
	portEMIFConfigWord = 4

	dualPortBit = 0
	dualEMIFBit = 1
)

// pllEnableMask covers bits 19:16 of the port/EMIF configuration word.
var pllEnableMask = hw.GenMask(19, 16)

// ErrUnavailable reports that the handoff table could not be read. No memory
// system can be brought up without it.
var ErrUnavailable = errors.New("handoff table unavailable")

// A BlobReader fetches a raw handoff table from wherever the firmware left
// it.
type BlobReader interface {
	ReadBlob(id ID, words int) ([]uint32, error)
}

// ReadTopology reads the SDRAM handoff table and decodes the controller
// topology. The returned topology is read-only for the rest of bring-up.
func ReadTopology(r BlobReader, logger *log.Logger) (*emif.Topology, error) {
	table, err := r.ReadBlob(TableSDRAM, TableWords)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(table) < TableWords {
		return nil, fmt.Errorf("%w: short table, %d of %d words",
			ErrUnavailable, len(table), TableWords)
	}

	cfg := table[portEMIFConfigWord]

	topo := &emif.Topology{
		NumPorts:      1,
		NumInstances:  1,
		PLLEnableMask: hw.FieldGet(pllEnableMask, cfg),
	}

	if cfg&hw.Bit(dualPortBit) != 0 {
		topo.NumPorts = 2
	}
	logger.Printf("DDR: dual port from handoff: %v", topo.DualPort())

	if cfg&hw.Bit(dualEMIFBit) != 0 {
		topo.NumInstances = 2
	}
	logger.Printf("DDR: dual EMIF from handoff: %v", topo.DualInstance())
	logger.Printf("DDR: enabled PLL mask from handoff: 0x%x", topo.PLLEnableMask)

	for i := 0; i < topo.NumInstances; i++ {
		topo.Instances = append(topo.Instances, &emif.Instance{
			CSRAddr: emif.CSRBaseAddrs[i],
		})
		logger.Printf("DDR: EMIF instance %d CSR at 0x%x enabled", i, emif.CSRBaseAddrs[i])
	}

	return topo, nil
}
