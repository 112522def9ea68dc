package bringup_test

import (
	"io"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/soclab/emifup/board"
	"github.com/soclab/emifup/bringup"
	"github.com/soclab/emifup/devsim"
	"github.com/soclab/emifup/geometry"
	"github.com/soclab/emifup/handoff"
	"github.com/soclab/emifup/reset"
	"github.com/soclab/emifup/scratch"
	"github.com/soclab/emifup/sequencer"
	"github.com/soclab/emifup/sideband"
)

// stageRecorder keeps every hook invocation in order.
type stageRecorder struct {
	ctxs []bringup.HookCtx
}

func (r *stageRecorder) Func(ctx bringup.HookCtx) {
	r.ctxs = append(r.ctxs, ctx)
}

func (r *stageRecorder) completed() []bringup.Stage {
	var stages []bringup.Stage
	for _, c := range r.ctxs {
		if c.Pos == bringup.HookPosStageEnd && c.Err == nil {
			stages = append(stages, c.Stage)
		}
	}
	return stages
}

func (r *stageRecorder) failure() (bringup.Stage, error) {
	for _, c := range r.ctxs {
		if c.Pos == bringup.HookPosStageEnd && c.Err != nil {
			return c.Stage, c.Err
		}
	}
	return "", nil
}

var _ = Describe("Orchestrator", func() {
	var (
		cfg      devsim.Config
		platform *devsim.Platform
		recorder *stageRecorder
	)

	BeforeEach(func() {
		cfg = devsim.MakeDefaultConfig()
		recorder = &stageRecorder{}
	})

	// boot builds a fresh orchestrator over the shared platform and runs one
	// bring-up, the way the boot ROM would on every reset.
	boot := func() (bringup.Result, error) {
		o := bringup.MakeBuilder().
			WithRegisters(platform.Regs).
			WithScratch(platform.Scratch).
			WithHandoffReader(platform).
			WithProfileActivator(platform).
			WithSequencer(platform.Seq).
			WithBoardDescriptor(&board.DTB{Blob: platform.DTB}).
			WithLogger(log.New(io.Discard, "", 0)).
			WithHook(recorder).
			Build("BringUp")
		return o.BringUpMemory()
	}

	Context("on a default 4 GiB ECC platform", func() {
		BeforeEach(func() {
			platform = devsim.NewPlatform(cfg)
		})

		It("should bring memory up and report the mapped regions", func() {
			res, err := boot()

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Base).To(Equal(uint64(0x80000000)))
			Expect(res.TotalBytes).To(Equal(uint64(4 << 30)))
			Expect(res.Regions).To(Equal([]geometry.Region{
				{Start: 0x80000000, Size: 2 << 30},
				{Start: 0x880000000, Size: 2 << 30},
			}))
		})

		It("should run the stages in order", func() {
			_, err := boot()

			Expect(err).ToNot(HaveOccurred())
			Expect(recorder.completed()).To(Equal([]bringup.Stage{
				bringup.StageHandoffRead,
				bringup.StageTopologyConfig,
				bringup.StageCalibration,
				bringup.StageGeometry,
				bringup.StageECCDecision,
				bringup.StageFullInit,
				bringup.StageFirewall,
			}))
		})

		It("should clear the progress marker on success", func() {
			_, err := boot()

			Expect(err).ToNot(HaveOccurred())
			pad := &scratch.Pad{Regs: platform.Scratch}
			Expect(pad.InProgress()).To(BeFalse())
		})

		It("should open the firewall for every mapped bank", func() {
			_, err := boot()

			Expect(err).ToNot(HaveOccurred())
			Expect(platform.Regs.Read32(0x18000c00)).To(Equal(uint32(1)))
			Expect(platform.Regs.Read32(0x18000c04)).To(Equal(uint32(1)))
			Expect(platform.Regs.Read32(0x18000c08)).To(BeZero())
			Expect(platform.Regs.Read32(0x18000d00)).To(Equal(uint32(1)))
			Expect(platform.Regs.Read32(0x18000d04)).To(Equal(uint32(1)))
			Expect(platform.Regs.Read32(0x18000d08)).To(Equal(uint32(1)))
		})

		It("should fully initialize ECC memory on a power-on boot", func() {
			_, err := boot()

			Expect(err).ToNot(HaveOccurred())
			Expect(platform.Seq.FullInitCalls).To(Equal(1))
		})

		It("should skip full initialization on a clean warm boot", func() {
			_, err := boot()
			Expect(err).ToNot(HaveOccurred())
			Expect(platform.Seq.FullInitCalls).To(Equal(1))

			platform.Scratch.SetResetCause(reset.Warm)
			recorder = &stageRecorder{}
			_, err = boot()

			Expect(err).ToNot(HaveOccurred())
			Expect(platform.Seq.FullInitCalls).To(Equal(1))
			Expect(recorder.completed()).ToNot(ContainElement(bringup.StageFullInit))
		})

		It("should force re-calibration and full init after a DRAM double-bit error", func() {
			_, err := boot()
			Expect(err).ToNot(HaveOccurred())
			Expect(platform.Seq.RecalCalls).To(BeZero())

			platform.Scratch.SetResetCause(reset.Warm)
			platform.Scratch.MarkDRAMDBE()
			_, err = boot()

			Expect(err).ToNot(HaveOccurred())
			Expect(platform.Seq.RecalCalls).To(Equal(1))
			Expect(platform.Seq.FullInitCalls).To(Equal(2))
		})
	})

	Context("on a dual-port, dual-EMIF platform", func() {
		BeforeEach(func() {
			cfg.DualPort = true
			cfg.DualEMIF = true
			platform = devsim.NewPlatform(cfg)
		})

		It("should program both sideband flags and interleave", func() {
			_, err := boot()

			Expect(err).ToNot(HaveOccurred())

			flagOutSet := sideband.DefaultF2SDRAMManagerBase +
				sideband.FlagOutSet0Offset
			Expect(platform.Regs.Read32(flagOutSet)).To(Equal(uint32(0x30)))

			mpfe := platform.Regs.Read32(sideband.DefaultMPFEConfigAddr)
			Expect(mpfe & (1 << 2)).ToNot(BeZero())
			Expect(mpfe & (1 << 8)).ToNot(BeZero())

			Expect(platform.Activated).
				To(Equal([]string{sideband.ProfileInterleavingOn}))
		})
	})

	Context("when the board declares less memory than the hardware reports", func() {
		BeforeEach(func() {
			cfg.DeclaredBytes = 2 << 30
			platform = devsim.NewPlatform(cfg)
		})

		It("should map the declared size", func() {
			res, err := boot()

			Expect(err).ToNot(HaveOccurred())
			Expect(res.TotalBytes).To(Equal(uint64(2 << 30)))
			Expect(res.Regions).To(Equal([]geometry.Region{
				{Start: 0x80000000, Size: 2 << 30},
			}))
		})
	})

	Context("when the board declares more memory than the hardware reports", func() {
		BeforeEach(func() {
			cfg.DeclaredBytes = 8 << 30
			platform = devsim.NewPlatform(cfg)
		})

		It("should abort with the geometry error and keep the marker set", func() {
			_, err := boot()

			Expect(err).To(MatchError(geometry.ErrExceedsHardware))

			stage, stageErr := recorder.failure()
			Expect(stage).To(Equal(bringup.StageGeometry))
			Expect(stageErr).To(MatchError(geometry.ErrExceedsHardware))

			pad := &scratch.Pad{Regs: platform.Scratch}
			Expect(pad.InProgress()).To(BeTrue())
		})
	})

	Context("when the firmware handoff is unreadable", func() {
		BeforeEach(func() {
			cfg.FailHandoff = true
			platform = devsim.NewPlatform(cfg)
		})

		It("should abort in the first stage", func() {
			_, err := boot()

			Expect(err).To(MatchError(handoff.ErrUnavailable))
			Expect(recorder.completed()).To(BeEmpty())
		})
	})

	Context("when the interconnect profiles are missing", func() {
		BeforeEach(func() {
			cfg.DropProfiles = true
			platform = devsim.NewPlatform(cfg)
		})

		It("should abort configuring the topology", func() {
			_, err := boot()

			Expect(err).To(MatchError(sideband.ErrProfileNotFound))

			stage, _ := recorder.failure()
			Expect(stage).To(Equal(bringup.StageTopologyConfig))
		})
	})

	Context("when calibration keeps failing", func() {
		BeforeEach(func() {
			cfg.InitCalOK = false
			cfg.Recal = []bool{false}
			platform = devsim.NewPlatform(cfg)
		})

		It("should fail the boot but recover on the next one", func() {
			_, err := boot()

			Expect(err).To(MatchError(sequencer.ErrCalibrationFailed))
			pad := &scratch.Pad{Regs: platform.Scratch}
			Expect(pad.InProgress()).To(BeTrue())

			// Next boot re-calibrates past the scripted failure and must see
			// the interrupted run, forcing a full initialization even though
			// the reset was warm.
			platform.Scratch.SetResetCause(reset.Warm)
			recorder = &stageRecorder{}
			res, err := boot()

			Expect(err).ToNot(HaveOccurred())
			Expect(res.TotalBytes).To(Equal(uint64(4 << 30)))
			Expect(platform.Seq.RecalCalls).To(Equal(2))
			Expect(platform.Seq.FullInitCalls).To(Equal(1))
			Expect(recorder.completed()).To(ContainElement(bringup.StageFullInit))
			Expect(pad.InProgress()).To(BeFalse())
		})
	})
})

var _ = Describe("Builder", func() {
	It("should panic when a collaborator is missing", func() {
		Expect(func() {
			bringup.MakeBuilder().Build("BringUp")
		}).To(Panic())
	})
})
