package tiltcard

import "time"

// SequencerState is the read-only view of a Sequencer handed to renderers.
type SequencerState struct {
	Index         int
	Transitioning bool
}

// Sequencer owns the current content index and its timed evolution.
//
// A transition is a set of independently scheduled effects measured from the
// trigger time t0:
//
//	t0        transitioning = true, dynamic elements fade out
//	t0+400ms  index advances, dynamic elements pop in
//	t0+800ms  pop-in cleared, transitioning = false
//
// Interactive triggers are rejected while a transition is in flight; the
// initial and periodic triggers are not, so their effects may interleave
// with an interactive transition. Phase is derived from the most recent
// accepted trigger only.
type Sequencer struct {
	sched      *Scheduler
	imageCount int
	sink       EventSink

	state SequencerState
	steps int // completed content advances, unwrapped

	lastTrigger time.Duration
	triggered   bool

	initial  *Timer
	periodic *Timer
	inflight []*Timer

	stopped bool
}

// NewSequencer creates an idle sequencer at index 0 that cycles through
// imageCount content slices. Panics if imageCount < 1.
func NewSequencer(sched *Scheduler, imageCount int) *Sequencer {
	if imageCount < 1 {
		panic("tiltcard: sequencer needs at least one content slice")
	}
	return &Sequencer{sched: sched, imageCount: imageCount}
}

// SetEventSink sets the optional event receiver.
func (q *Sequencer) SetEventSink(sink EventSink) {
	q.sink = sink
}

// Start schedules the initial trigger after InitialDelay and a periodic
// trigger every interval (DefaultAutoPlayInterval when interval <= 0).
// Timers from a previous Start are cancelled first.
func (q *Sequencer) Start(interval time.Duration) {
	if q.stopped {
		return
	}
	if interval <= 0 {
		interval = DefaultAutoPlayInterval
	}
	q.initial.Stop()
	q.periodic.Stop()
	q.initial = q.sched.After(InitialDelay, func() {
		q.initial = nil
		q.Trigger(TriggerInitial)
	})
	q.periodic = q.sched.Every(interval, func() {
		q.Trigger(TriggerPeriodic)
	})
}

// Trigger starts a transition. Interactive triggers are a no-op returning
// false while a transition is in flight; other sources always start one.
func (q *Sequencer) Trigger(src TriggerSource) bool {
	if q.stopped {
		return false
	}
	if src == TriggerInteractive && q.state.Transitioning {
		q.emit(EventInteractionIgnored, src)
		return false
	}

	q.state.Transitioning = true
	q.lastTrigger = q.sched.Now()
	q.triggered = true
	q.emit(EventTransitionStart, src)

	q.schedule(SwapDelay, func() {
		q.steps++
		q.state.Index = q.steps % q.imageCount
		q.emit(EventContentAdvance, src)
	})
	q.schedule(TransitionDuration, func() {
		q.emit(EventPopInEnd, src)
	})
	q.schedule(TransitionDuration, func() {
		q.state.Transitioning = false
		q.emit(EventTransitionEnd, src)
	})
	return true
}

// HandleInteraction is the click-to-advance affordance. It reports whether
// a transition was started.
func (q *Sequencer) HandleInteraction() bool {
	return q.Trigger(TriggerInteractive)
}

// Stop cancels every pending timer. After Stop the sequencer never changes
// state again and all operations are no-ops. Safe to call more than once.
func (q *Sequencer) Stop() {
	if q.stopped {
		return
	}
	q.stopped = true
	q.initial.Stop()
	q.periodic.Stop()
	for _, t := range q.inflight {
		t.Stop()
	}
	q.initial = nil
	q.periodic = nil
	q.inflight = nil
}

// Stopped reports whether Stop has been called.
func (q *Sequencer) Stopped() bool {
	return q.stopped
}

// Running reports whether the periodic trigger is scheduled.
func (q *Sequencer) Running() bool {
	return q.periodic != nil
}

// State returns the current index and transitioning flag.
func (q *Sequencer) State() SequencerState {
	return q.state
}

// Phase returns the visual phase of the dynamic elements.
func (q *Sequencer) Phase() Phase {
	if !q.triggered {
		return PhaseVisible
	}
	return phaseAt(q.sched.Now() - q.lastTrigger)
}

// PhaseElapsed returns the time spent in the current phase. Renderers use it
// to drive fade and pop curves. Zero when the phase is PhaseVisible.
func (q *Sequencer) PhaseElapsed() time.Duration {
	if !q.triggered {
		return 0
	}
	e := q.sched.Now() - q.lastTrigger
	switch phaseAt(e) {
	case PhaseFadingOut:
		return e
	case PhasePoppingIn:
		return e - SwapDelay
	default:
		return 0
	}
}

// Steps returns the number of content advances so far.
func (q *Sequencer) Steps() int {
	return q.steps
}

// Select maps the current position onto collections of the given sizes.
// Icons and titles cycle by their own length, independent of the image
// count.
func (q *Sequencer) Select(c Counts) Selection {
	return c.Select(q.steps)
}

// phaseAt maps the time since a trigger to a phase.
func phaseAt(elapsed time.Duration) Phase {
	switch {
	case elapsed < 0:
		return PhaseVisible
	case elapsed < SwapDelay:
		return PhaseFadingOut
	case elapsed < TransitionDuration:
		return PhasePoppingIn
	default:
		return PhaseVisible
	}
}

// schedule registers a transition effect and tracks it so Stop can cancel
// it. Fired timers are pruned as they run.
func (q *Sequencer) schedule(delay time.Duration, fn func()) {
	var t *Timer
	t = q.sched.After(delay, func() {
		q.forget(t)
		if q.stopped {
			return
		}
		fn()
	})
	q.inflight = append(q.inflight, t)
}

func (q *Sequencer) forget(t *Timer) {
	for i, p := range q.inflight {
		if p == t {
			copy(q.inflight[i:], q.inflight[i+1:])
			q.inflight[len(q.inflight)-1] = nil
			q.inflight = q.inflight[:len(q.inflight)-1]
			return
		}
	}
}

func (q *Sequencer) emit(typ EventType, src TriggerSource) {
	if q.sink == nil {
		return
	}
	q.sink.EmitEvent(CardEvent{
		Type:          typ,
		Source:        src,
		Index:         q.state.Index,
		Transitioning: q.state.Transitioning,
		At:            q.sched.Now(),
	})
}
