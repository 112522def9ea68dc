// Package bringup sequences the memory bring-up: handoff discovery, fabric
// configuration, calibration, geometry reconciliation, the full-init
// decision, and firewall activation. One Orchestrator runs once per boot.
package bringup

import (
	"log"

	"github.com/soclab/emifup/eccinit"
	"github.com/soclab/emifup/emif"
	"github.com/soclab/emifup/firewall"
	"github.com/soclab/emifup/geometry"
	"github.com/soclab/emifup/handoff"
	"github.com/soclab/emifup/reset"
	"github.com/soclab/emifup/scratch"
	"github.com/soclab/emifup/sequencer"
	"github.com/soclab/emifup/sideband"
)

// A BoardDescriptor declares how much memory the board claims to carry. Zero
// defers to the hardware-reported size.
type BoardDescriptor interface {
	DeclaredRAMSize() (uint64, error)
}

// Result is what a successful bring-up hands to the outer boot sequence.
type Result struct {
	Base       uint64
	TotalBytes uint64
	Regions    []geometry.Region
}

// An Orchestrator owns one bring-up run. Between its creation and the end of
// BringUpMemory it exclusively owns the topology and descriptor it builds;
// only the scratch-pad markers outlive the run.
type Orchestrator struct {
	HookableBase

	name string
	log  *log.Logger

	pad   *scratch.Pad
	blob  handoff.BlobReader
	side  *sideband.Configurator
	cal   *sequencer.Controller
	fw    *firewall.Activator
	board BoardDescriptor

	banks          [geometry.MaxBankCount]geometry.Bank
	requestedBanks int
}

// Name returns the name the orchestrator was built with.
func (o *Orchestrator) Name() string {
	return o.name
}

// BringUpMemory runs the bring-up sequence to completion or to the first
// fatal error. On entry it records whether a prior run hung and sets the
// progress marker; the marker is cleared only on success, deliberately left
// set on every error exit so the next boot can detect the incomplete run.
func (o *Orchestrator) BringUpMemory() (Result, error) {
	cause := reset.Classify(o.pad.ResetCauseRegister())
	priorInProgress := o.pad.InProgress()

	o.log.Printf("DDR: SDRAM init in progress ...")
	o.log.Printf("DDR: reset cause: %s, prior run in progress: %v",
		cause, priorInProgress)
	o.pad.SetInProgress(true)

	var (
		topo    *emif.Topology
		desc    *emif.MemoryDescriptor
		regions []geometry.Region
		total   uint64
	)

	err := o.step(StageHandoffRead, func() (err error) {
		topo, err = handoff.ReadTopology(o.blob, o.log)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	err = o.step(StageTopologyConfig, func() error {
		return o.side.Configure(topo)
	})
	if err != nil {
		return Result{}, err
	}

	err = o.step(StageCalibration, func() (err error) {
		desc, err = o.cal.Initialize(topo)
		if err != nil {
			return err
		}
		return o.cal.EnsureCalibrated(topo, desc)
	})
	if err != nil {
		return Result{}, err
	}

	err = o.step(StageGeometry, func() (err error) {
		declared, err := o.board.DeclaredRAMSize()
		if err != nil {
			return err
		}
		regions, total, err = geometry.Reconcile(desc.TotalBytes(), declared,
			o.requestedBanks, o.banks, o.log)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	o.log.Printf("%s: %d MiB", desc.Technology, total>>20)

	fullInit := false
	err = o.step(StageECCDecision, func() error {
		fullInit = eccinit.Required(eccinit.Inputs{
			ECCCapable:      desc.ECCCapable,
			OCRAMDBE:        o.pad.OCRAMDoubleBitError(),
			DRAMDBE:         o.pad.DRAMDoubleBitError(),
			PriorInProgress: priorInProgress,
			Cause:           cause,
		})
		o.log.Printf("DDR: full memory initialization required: %v", fullInit)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if fullInit {
		err = o.step(StageFullInit, func() error {
			return o.cal.FullMemInit(topo)
		})
		if err != nil {
			return Result{}, err
		}
		o.log.Printf("SDRAM-ECC: initialized success")
	}

	geometry.CheckRegions(regions, total, o.banks)
	o.log.Printf("DDR: size check success")

	o.step(StageFirewall, func() error {
		o.fw.Enable(regions)
		return nil
	})

	o.pad.SetInProgress(false)
	o.log.Printf("DDR: init success")

	res := Result{TotalBytes: total, Regions: regions}
	if len(regions) > 0 {
		res.Base = regions[0].Start
	}
	return res, nil
}

// step runs one stage between its start and end hooks.
func (o *Orchestrator) step(s Stage, fn func() error) error {
	o.InvokeHook(HookCtx{Domain: o, Pos: HookPosStageStart, Stage: s})
	err := fn()
	o.InvokeHook(HookCtx{Domain: o, Pos: HookPosStageEnd, Stage: s, Err: err})
	if err != nil {
		o.log.Printf("DDR: %s failed: %v", s, err)
	}
	return err
}
