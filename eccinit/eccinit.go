// Package eccinit decides whether a destructive full-memory initialization
// pass is required before the memory is handed to the rest of the boot.
package eccinit

import "github.com/soclab/emifup/reset"

// Inputs collects everything the decision depends on.
type Inputs struct {
	ECCCapable      bool
	OCRAMDBE        bool
	DRAMDBE         bool
	PriorInProgress bool
	Cause           reset.Cause
}

// Required reports whether full memory initialization must run. Warm and cold
// resets with a clean ECC history preserve memory contents and may skip the
// destructive pass; any recorded double-bit error, a hung prior bring-up, or
// any other reset cause cannot guarantee content integrity. Without ECC there
// is nothing to scrub.
func Required(in Inputs) bool {
	if !in.ECCCapable {
		return false
	}
	if in.OCRAMDBE || in.DRAMDBE || in.PriorInProgress {
		return true
	}
	return !in.Cause.PreservesMemory()
}
