// Package sideband programs the memory-fabric sideband manager and the
// interconnect interleaving profile from the discovered controller topology.
package sideband

import (
	"errors"
	"fmt"
	"log"

	"github.com/soclab/emifup/emif"
	"github.com/soclab/emifup/hw"
)

// Sideband manager register offsets from the F2SDRAM manager base.
const (
	FlagOutSet0Offset    = 0x50
	FlagOutStatus0Offset = 0x58
)

// Flag-out bits programmed from the topology.
const (
	flagDualPort = 4
	flagDualEMIF = 5
)

// MPFE lite-interface configuration bits in the system-manager MPFE config
// register. Both are set when the second EMIF instance is active.
const (
	mpfeLiteIntfSel = 2
	mpfeLiteActive  = 8
)

// Default platform addresses. The simulator and the real platform share
// these; tests may override them per Configurator.
const (
	DefaultF2SDRAMManagerBase uint64 = 0x18001000
	DefaultMPFEConfigAddr     uint64 = 0x10d12020
)

// Names of the two mutually exclusive interconnect configuration profiles.
const (
	ProfileInterleavingOn  = "ccu-interleaving-on"
	ProfileInterleavingOff = "ccu-interleaving-off"
)

// ErrProfileNotFound reports that a named hardware-configuration profile
// could not be located or activated. Memory routing is undefined without the
// profile, so this aborts bring-up.
var ErrProfileNotFound = errors.New("hardware profile not found")

// A ProfileActivator applies a named hardware-configuration profile.
type ProfileActivator interface {
	Activate(name string) error
}

// A Configurator programs the sideband manager and selects the interleaving
// profile.
type Configurator struct {
	Regs     hw.RegisterSpace
	Profiles ProfileActivator
	Log      *log.Logger

	// SidebandBase and MPFEConfigAddr default to the platform addresses when
	// zero.
	SidebandBase   uint64
	MPFEConfigAddr uint64
}

func (c *Configurator) sidebandBase() uint64 {
	if c.SidebandBase != 0 {
		return c.SidebandBase
	}
	return DefaultF2SDRAMManagerBase
}

func (c *Configurator) mpfeConfigAddr() uint64 {
	if c.MPFEConfigAddr != 0 {
		return c.MPFEConfigAddr
	}
	return DefaultMPFEConfigAddr
}

// Configure programs the sideband flags and activates the interleaving
// profile matching the topology. A profile activation failure is fatal to
// bring-up.
func (c *Configurator) Configure(topo *emif.Topology) error {
	flagOutSet := c.sidebandBase() + FlagOutSet0Offset

	if topo.DualPort() {
		hw.SetBits32(c.Regs, flagOutSet, hw.Bit(flagDualPort))
	}

	if topo.DualInstance() {
		c.enableMPFELite()
		hw.SetBits32(c.Regs, flagOutSet, hw.Bit(flagDualEMIF))
	}

	c.Log.Printf("DDR: sideband flag-out status: 0x%x",
		c.Regs.Read32(c.sidebandBase()+FlagOutStatus0Offset))

	return c.configureInterleaving(topo)
}

// enableMPFELite switches the fabric to the lite-interface routing mode
// needed when both EMIF instances are active.
func (c *Configurator) enableMPFELite() {
	hw.SetBits32(c.Regs, c.mpfeConfigAddr(), hw.Bit(mpfeLiteIntfSel))
	hw.SetBits32(c.Regs, c.mpfeConfigAddr(), hw.Bit(mpfeLiteActive))

	c.Log.Printf("DDR: mpfe config: 0x%x", c.Regs.Read32(c.mpfeConfigAddr()))
}

func (c *Configurator) configureInterleaving(topo *emif.Topology) error {
	name := ProfileInterleavingOff
	if topo.DualPort() || topo.DualInstance() {
		name = ProfileInterleavingOn
	}
	c.Log.Printf("DDR: activating interconnect profile %q", name)

	if err := c.Profiles.Activate(name); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrProfileNotFound, name, err)
	}

	return nil
}
