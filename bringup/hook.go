package bringup

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosStageStart triggers before a bring-up stage runs.
var HookPosStageStart = &HookPos{Name: "StageStart"}

// HookPosStageEnd triggers after a bring-up stage completes, with the stage
// error, if any, in the context.
var HookPosStageEnd = &HookPos{Name: "StageEnd"}

// HookCtx holds the information about the site that a hook is triggered.
type HookCtx struct {
	Domain *Orchestrator
	Pos    *HookPos
	Stage  Stage
	Err    error
}

// A Hook is a short piece of program that the orchestrator invokes at stage
// boundaries.
type Hook interface {
	Func(ctx HookCtx)
}

// A Hookable object accepts hooks.
type Hookable interface {
	AcceptHook(hook Hook)
}

// HookableBase provides the hook bookkeeping for the orchestrator.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// InvokeHook triggers the registered hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
