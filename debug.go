package tiltcard

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOutput receives debug diagnostics. Tests replace it.
var debugOutput io.Writer = os.Stderr

// debugStats holds per-frame timing and draw metrics.
// Only populated when the card is in debug mode.
type debugStats struct {
	composeTime  time.Duration
	projectTime  time.Duration
	commandCount int
	tilt         TiltVector
	phase        Phase
}

// debugf prints one diagnostic line when enabled is true.
func debugf(enabled bool, format string, args ...any) {
	if !enabled {
		return
	}
	_, _ = fmt.Fprintf(debugOutput, "[tiltcard] "+format+"\n", args...)
}

// debugLog prints timing and draw stats for one frame.
func (c *Card) debugLog(stats debugStats) {
	if !c.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOutput,
		"[tiltcard] compose: %v | project: %v | total: %v\n",
		stats.composeTime, stats.projectTime, stats.composeTime+stats.projectTime)
	_, _ = fmt.Fprintf(debugOutput,
		"[tiltcard] commands: %d | phase: %s | tilt: (%.2f, %.2f)\n",
		stats.commandCount, stats.phase, stats.tilt.RotateX, stats.tilt.RotateY)
}

// debugEventSink logs every card event and forwards it to next.
type debugEventSink struct {
	next EventSink
}

func (s debugEventSink) EmitEvent(e CardEvent) {
	_, _ = fmt.Fprintf(debugOutput, "[tiltcard] %v %s source=%s index=%d transitioning=%v\n",
		e.At, e.Type, e.Source, e.Index, e.Transitioning)
	if s.next != nil {
		s.next.EmitEvent(e)
	}
}
