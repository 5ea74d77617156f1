package domain

// StepKind tags one solver step. The values are stable wire strings.
type StepKind string

const (
	StepFocus     StepKind = "focus"     // search picked a cell to branch on
	StepAssign    StepKind = "assign"    // a value was written into a cell
	StepUnassign  StepKind = "unassign"  // a guessed value was withdrawn
	StepGuess     StepKind = "guess"     // search is about to try a value
	StepBacktrack StepKind = "backtrack" // the tried value led nowhere
)

// Reasons carried by assign steps.
const (
	ReasonNakedSingle  = "naked single"
	ReasonHiddenSingle = "hidden single"
	ReasonGuess        = "guess"
)

// Step is one event in a solve trace, in exact execution order. Value is set
// for assign, guess and backtrack; Reason only for assign.
type Step struct {
	Kind   StepKind `json:"kind"`
	Cell   int      `json:"cell"`
	Value  uint8    `json:"value,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// StepSink receives steps as the solver takes them.
type StepSink interface {
	Record(Step)
}

// StepSinkFunc adapts a function to a StepSink.
type StepSinkFunc func(Step)

func (f StepSinkFunc) Record(s Step) { f(s) }

// Recorder collects every step; once the solve returns, Steps is the
// finished trace and is not touched again.
type Recorder struct {
	Steps []Step
}

func (r *Recorder) Record(s Step) { r.Steps = append(r.Steps, s) }
