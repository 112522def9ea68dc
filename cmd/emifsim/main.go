// Command emifsim runs the memory bring-up sequence against a simulated
// platform and keeps stage traces for later inspection.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "emifsim",
	Short: "Simulate EMIF/DDR memory bring-up runs and inspect their traces.",
	Long: `emifsim executes the memory bring-up sequence against a simulated ` +
		`platform: synthesized firmware handoff tables, scripted calibration ` +
		`outcomes, and persistent scratch registers that survive simulated ` +
		`resets. Stage traces are recorded to a SQLite database; the serve ` +
		`command exposes them over HTTP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env for recurring scenarios; absence is fine.
		_ = godotenv.Load()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	atexit.Exit(0)
}
