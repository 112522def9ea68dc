package bringup

// A Stage is one step of the bring-up state machine. Stages run in the order
// listed; any stage error aborts the run.
type Stage string

// All bring-up stages.
const (
	StageHandoffRead    Stage = "handoff-read"
	StageTopologyConfig Stage = "topology-config"
	StageCalibration    Stage = "calibration"
	StageGeometry       Stage = "geometry"
	StageECCDecision    Stage = "ecc-decision"
	StageFullInit       Stage = "full-init"
	StageFirewall       Stage = "firewall"
)
