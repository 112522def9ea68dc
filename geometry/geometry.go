// Package geometry reconciles the hardware-reported memory size against the
// board descriptor and partitions the total into the fixed physical banks.
package geometry

import (
	"errors"
	"fmt"
	"log"
)

// MaxBankCount is the number of physical bank windows the memory map
// provides.
const MaxBankCount = 3

// A Bank is one fixed physical bank window: a start address and the largest
// size the window can hold.
type Bank struct {
	Start uint64
	Max   uint64
}

// DefaultBanks is the static physical memory map. Bank windows are listed in
// address order and are filled in that order.
var DefaultBanks = [MaxBankCount]Bank{
	{Start: 0x80000000, Max: 0x80000000},
	{Start: 0x880000000, Max: 0x780000000},
	{Start: 0x8800000000, Max: 0x7800000000},
}

// A Region is a bank window with the size actually assigned to it.
type Region struct {
	Start uint64
	Size  uint64
}

// ErrExceedsHardware reports a board-declared size larger than the physically
// present memory. The boot cannot proceed on memory that is not there.
var ErrExceedsHardware = errors.New("declared memory size exceeds hardware size")

// ErrBankOverflow reports a total that the allowed banks cannot hold, which
// would leave part of the memory unmapped.
var ErrBankOverflow = errors.New("memory size exceeds configured bank capacity")

// Reconcile cross-checks the hardware-reported size against the declared size
// and produces the final bank layout.
//
// A non-zero declared size wins over the hardware size, with a warning when
// the two disagree, unless it exceeds the hardware size, which is fatal. A
// zero declared size defers to hardware: the hardware size is partitioned
// into banks in address order, each bank taking its full capacity until the
// bank whose capacity covers the remainder, which takes exactly the
// remainder. requestedBanks caps how many banks may be used and is itself
// capped at MaxBankCount with a warning.
func Reconcile(hwBytes, declaredBytes uint64, requestedBanks int,
	banks [MaxBankCount]Bank, logger *log.Logger) ([]Region, uint64, error) {
	if declaredBytes > 0 && declaredBytes != hwBytes {
		logger.Printf("DDR: Warning: DRAM size from board descriptor (%d MiB) mismatch with hardware (%d MiB)",
			declaredBytes>>20, hwBytes>>20)
	}

	if declaredBytes > hwBytes {
		return nil, 0, fmt.Errorf("%w: declared %d MiB, hardware %d MiB",
			ErrExceedsHardware, declaredBytes>>20, hwBytes>>20)
	}

	total := hwBytes
	if declaredBytes > 0 {
		// The descriptor pins the size; banks follow the same fill rule over
		// the declared total.
		total = declaredBytes
	}

	regions, assigned := fill(total, requestedBanks, banks, logger)
	if assigned != total {
		return nil, 0, fmt.Errorf("%w: %d MiB into %d bank(s)",
			ErrBankOverflow, total>>20, requestedBanks)
	}

	return regions, total, nil
}

func fill(total uint64, requestedBanks int, banks [MaxBankCount]Bank,
	logger *log.Logger) ([]Region, uint64) {
	if requestedBanks > MaxBankCount {
		logger.Printf("DDR: Warning: requested bank count (%d) is bigger than max bank count (%d); max bank count is in use instead",
			requestedBanks, MaxBankCount)
		requestedBanks = MaxBankCount
	}

	var regions []Region
	var assigned uint64

	for i := 0; i < requestedBanks; i++ {
		remaining := total - assigned
		if remaining == 0 {
			break
		}

		if remaining <= banks[i].Max {
			regions = append(regions, Region{Start: banks[i].Start, Size: remaining})
			logger.Printf("DDR: memory bank[%d] start: 0x%x size: 0x%x",
				i, banks[i].Start, remaining)
			assigned += remaining
			break
		}

		regions = append(regions, Region{Start: banks[i].Start, Size: banks[i].Max})
		logger.Printf("DDR: memory bank[%d] start: 0x%x size: 0x%x",
			i, banks[i].Start, banks[i].Max)
		assigned += banks[i].Max
	}

	return regions, assigned
}

// CheckRegions panics if any region lies outside its bank window or the
// region sizes do not sum to total. Reconcile cannot produce such a layout;
// a violation is a programmer error.
func CheckRegions(regions []Region, total uint64, banks [MaxBankCount]Bank) {
	var sum uint64
	for i, r := range regions {
		if i >= MaxBankCount {
			log.Panicf("geometry: %d regions for %d banks", len(regions), MaxBankCount)
		}
		if r.Start != banks[i].Start || r.Size > banks[i].Max {
			log.Panicf("geometry: region %d (start 0x%x size 0x%x) outside bank window (start 0x%x max 0x%x)",
				i, r.Start, r.Size, banks[i].Start, banks[i].Max)
		}
		sum += r.Size
	}
	if sum != total {
		log.Panicf("geometry: region sizes sum to 0x%x, want 0x%x", sum, total)
	}
}
