package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/soclab/emifup/board"
	"github.com/soclab/emifup/boottrace"
	"github.com/soclab/emifup/bringup"
	"github.com/soclab/emifup/datarec"
	"github.com/soclab/emifup/devsim"
	"github.com/soclab/emifup/reset"
)

var runFlags struct {
	boots        int
	sizeGb       uint64
	declaredMiB  uint64
	dualPort     bool
	dualEMIF     bool
	ecc          bool
	resetCause   string
	initCalFail  bool
	recalFails   int
	banks        int
	traceDB      string
	failHandoff  bool
	dropProfiles bool
}

var resetCauses = map[string]reset.Cause{
	"power-on":      reset.PowerOn,
	"warm":          reset.Warm,
	"cold":          reset.Cold,
	"reconfig":      reset.Reconfig,
	"jtag-config":   reset.JTAGConfig,
	"remote-update": reset.RemoteUpdate,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute simulated bring-up boots and record their stage traces.",
	RunE:  runBoots,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runFlags.boots, "boots", 1, "number of boot attempts to simulate")
	f.Uint64Var(&runFlags.sizeGb, "size-gb", 32, "hardware memory size in gigabits")
	f.Uint64Var(&runFlags.declaredMiB, "declared-mib", 0, "board-declared size in MiB (0 defers to hardware)")
	f.BoolVar(&runFlags.dualPort, "dual-port", false, "enable the second controller port")
	f.BoolVar(&runFlags.dualEMIF, "dual-emif", false, "enable the second controller instance")
	f.BoolVar(&runFlags.ecc, "ecc", true, "fit ECC-capable memory")
	f.StringVar(&runFlags.resetCause, "reset-cause", "power-on", "cause of the first boot's reset")
	f.BoolVar(&runFlags.initCalFail, "init-cal-fail", false, "make the first calibration fail")
	f.IntVar(&runFlags.recalFails, "recal-fails", 0, "number of failing re-calibrations before one succeeds")
	f.IntVar(&runFlags.banks, "banks", 3, "requested memory bank count")
	f.StringVar(&runFlags.traceDB, "trace-db", os.Getenv("EMIFSIM_TRACE_DB"), "trace database path (default: generated name)")
	f.BoolVar(&runFlags.failHandoff, "fail-handoff", false, "make the firmware handoff table unreadable")
	f.BoolVar(&runFlags.dropProfiles, "drop-profiles", false, "remove the interconnect configuration profiles")

	rootCmd.AddCommand(runCmd)
}

func runBoots(cmd *cobra.Command, args []string) error {
	cause, ok := resetCauses[runFlags.resetCause]
	if !ok {
		return fmt.Errorf("unknown reset cause %q", runFlags.resetCause)
	}

	cfg := devsim.MakeDefaultConfig()
	cfg.SizeGb = runFlags.sizeGb
	cfg.DeclaredBytes = runFlags.declaredMiB << 20
	cfg.DualPort = runFlags.dualPort
	cfg.DualEMIF = runFlags.dualEMIF
	cfg.ECCCapable = runFlags.ecc
	cfg.InitCalOK = !runFlags.initCalFail
	cfg.FailHandoff = runFlags.failHandoff
	cfg.DropProfiles = runFlags.dropProfiles
	for i := 0; i < runFlags.recalFails; i++ {
		cfg.Recal = append(cfg.Recal, false)
	}

	platform := devsim.NewPlatform(cfg)
	recorder := datarec.New(runFlags.traceDB)
	logger := log.New(os.Stderr, "", 0)

	platform.Scratch.SetResetCause(cause)

	for boot := 0; boot < runFlags.boots; boot++ {
		if boot > 0 {
			// Subsequent boots in one session come out of warm reset.
			platform.Scratch.SetResetCause(reset.Warm)
		}

		tracer := boottrace.NewTracer(recorder)
		logger.Printf("=== boot %d (trace %s) ===", boot, tracer.BootID())

		o := bringup.MakeBuilder().
			WithRegisters(platform.Regs).
			WithScratch(platform.Scratch).
			WithHandoffReader(platform).
			WithProfileActivator(platform).
			WithSequencer(platform.Seq).
			WithBoardDescriptor(&board.DTB{Blob: platform.DTB}).
			WithRequestedBankCount(runFlags.banks).
			WithLogger(logger).
			WithHook(tracer).
			Build(fmt.Sprintf("DDR[boot %d]", boot))

		res, err := o.BringUpMemory()
		if err != nil {
			logger.Printf("boot %d failed: %v", boot, err)
			continue
		}

		logger.Printf("boot %d: base 0x%x, %d MiB in %d bank(s)",
			boot, res.Base, res.TotalBytes>>20, len(res.Regions))
	}

	recorder.Flush()
	fmt.Printf("trace recorded: %s\n", recorder.Path())

	return nil
}
