// Package boottrace records bring-up stage traces through the orchestrator's
// hooks, one record per stage per boot.
package boottrace

import (
	"time"

	"github.com/rs/xid"

	"github.com/soclab/emifup/bringup"
	"github.com/soclab/emifup/datarec"
)

// TableName is where stage records land in the recorder.
const TableName = "bringup_stages"

// A StageRecord is one completed bring-up stage.
type StageRecord struct {
	BootID  string
	Seq     int
	Stage   string
	Error   string
	StartNs int64
	EndNs   int64
}

// A Tracer is a bring-up hook that turns stage boundaries into records.
// Create one Tracer per boot attempt.
type Tracer struct {
	backend datarec.Recorder
	bootID  string
	seq     int
	started time.Time
}

// NewTracer creates a tracer writing to the given recorder, creating the
// stage table if this recorder has not seen it yet.
func NewTracer(backend datarec.Recorder) *Tracer {
	for _, t := range backend.ListTables() {
		if t == TableName {
			return &Tracer{backend: backend, bootID: xid.New().String()}
		}
	}

	backend.CreateTable(TableName, StageRecord{})

	return &Tracer{backend: backend, bootID: xid.New().String()}
}

// BootID identifies the boot attempt this tracer records.
func (t *Tracer) BootID() string {
	return t.bootID
}

// Func implements bringup.Hook.
func (t *Tracer) Func(ctx bringup.HookCtx) {
	switch ctx.Pos {
	case bringup.HookPosStageStart:
		t.started = time.Now()
	case bringup.HookPosStageEnd:
		errText := ""
		if ctx.Err != nil {
			errText = ctx.Err.Error()
		}
		t.backend.InsertData(TableName, StageRecord{
			BootID:  t.bootID,
			Seq:     t.seq,
			Stage:   string(ctx.Stage),
			Error:   errText,
			StartNs: t.started.UnixNano(),
			EndNs:   time.Now().UnixNano(),
		})
		t.seq++
	}
}
