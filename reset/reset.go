// Package reset classifies the cause of the last reset from the persistent
// scratch register that records it.
package reset

// A Cause is the reason the platform was last reset.
type Cause int

// All reset causes the scratch register can encode.
const (
	PowerOn Cause = iota
	Warm
	Cold
	Reconfig
	JTAGConfig
	RemoteUpdate
)

// CauseMask covers the cause field, bits 31:29 of the cold scratch register.
const (
	CauseMask  uint32 = 0xe0000000
	causeShift        = 29
)

var causeNames = map[Cause]string{
	PowerOn:      "power-on",
	Warm:         "warm",
	Cold:         "cold",
	Reconfig:     "reconfig",
	JTAGConfig:   "jtag-config",
	RemoteUpdate: "remote-update",
}

func (c Cause) String() string {
	if n, ok := causeNames[c]; ok {
		return n
	}
	return "unknown"
}

// PreservesMemory reports whether a reset of this cause can have left DRAM
// contents intact. Only warm and cold resets qualify.
func (c Cause) PreservesMemory() bool {
	return c == Warm || c == Cold
}

// Classify decodes the reset cause from the raw scratch register value. It is
// total: the 3-bit field has two encodings beyond the defined causes, and
// both classify as PowerOn, the cause that forces the most conservative
// bring-up path.
func Classify(reg uint32) Cause {
	c := Cause((reg & CauseMask) >> causeShift)
	if c > RemoteUpdate {
		return PowerOn
	}
	return c
}

// Encode packs a cause into the scratch register field. The simulator uses it
// to stage reset scenarios; Classify(Encode(c)) == c for every defined cause.
func Encode(c Cause) uint32 {
	return (uint32(c) << causeShift) & CauseMask
}
