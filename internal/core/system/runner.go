package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Runner executes systems bucketed by phase. Within a phase, systems run
// in registration order.
//
// A tick that takes longer than the budget is logged with the slowest
// phase; a zero budget disables the check.
type Runner struct {
	phases [phaseCount][]System
	log    *zap.Logger
	budget time.Duration
	ticks  uint64
}

func NewRunner(log *zap.Logger, budget time.Duration) *Runner {
	return &Runner{log: log, budget: budget}
}

// Register adds s to the bucket of its phase. It panics on a phase outside
// the declared range.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p >= phaseCount {
		panic(fmt.Sprintf("system: %T declares unknown phase %d", s, p))
	}
	r.phases[p] = append(r.phases[p], s)
}

func (r *Runner) Tick(dt time.Duration) {
	start := time.Now()
	var slowest Phase
	var slowestTook time.Duration
	for p := range r.phases {
		phaseStart := time.Now()
		r.runPhase(Phase(p), dt)
		if took := time.Since(phaseStart); took > slowestTook {
			slowest, slowestTook = Phase(p), took
		}
	}
	r.ticks++

	if took := time.Since(start); r.budget > 0 && took > r.budget {
		r.log.Warn("tick over budget",
			zap.Uint64("tick", r.ticks),
			zap.Duration("took", took),
			zap.Duration("budget", r.budget),
			zap.Stringer("slowest_phase", slowest),
			zap.Duration("slowest_took", slowestTook),
		)
	}
}

// TickPhase runs only the systems registered for phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	if phase < phaseCount {
		r.runPhase(phase, dt)
	}
}

func (r *Runner) runPhase(phase Phase, dt time.Duration) {
	for _, s := range r.phases[phase] {
		s.Update(dt)
	}
}

// Ticks returns how many full ticks have run.
func (r *Runner) Ticks() uint64 { return r.ticks }

func (r *Runner) Len() int {
	n := 0
	for _, bucket := range r.phases {
		n += len(bucket)
	}
	return n
}
