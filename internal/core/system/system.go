package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase uint8

const (
	PhaseInput      Phase = iota // 0: scripted input, spawning
	PhasePreUpdate               // 1: dispatch last tick's messages
	PhaseUpdate                  // 2: simulation
	PhasePostUpdate              // 3: lifetimes, bookkeeping
	PhaseCleanup                 // 4: destroy queued entities

	phaseCount
)

var phaseNames = [phaseCount]string{"input", "pre_update", "update", "post_update", "cleanup"}

func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
