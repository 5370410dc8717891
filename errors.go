package autopas

import "fmt"

// ConfigurationError is raised whenever a (container, traversal, layout,
// newton3, cellSizeFactor) tuple cannot be realized: an empty search space
// after filtering, an incompatible traversal for a container, Newton-3
// demanded by a functor that refused it, a zero-area slab, or an unknown
// enum value. Unrecoverable.
type ConfigurationError struct {
	Container       ContainerOption
	Traversal       TraversalOption
	DataLayout      DataLayoutOption
	Newton3         Newton3Option
	CellSizeFactor  float64
	Reason          string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(
		"autopas: invalid configuration (container=%s, traversal=%s, layout=%s, newton3=%s, cellSizeFactor=%g): %s",
		e.Container, e.Traversal, e.DataLayout, e.Newton3, e.CellSizeFactor, e.Reason,
	)
}

// InvariantViolationError is raised when the caller breaks a data-model
// invariant: adding an owned particle outside the box, or adding a halo
// particle inside the box. UpdateHalo for an id the container does not
// know about is not reported this way: it returns found=false and a nil
// error. Unrecoverable.
type InvariantViolationError struct {
	Invariant string
	ParticleID uint64
	Position   Vec3
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf(
		"autopas: invariant violated (%s): particle id=%d position=%v",
		e.Invariant, e.ParticleID, e.Position,
	)
}

// SamplingInvalidError marks a sample the façade must discard: the
// configuration selected by the tuner turned out not to be runnable at the
// current geometry (e.g. a neighbor-list rebuild revealed the container
// shape changed). Recoverable: the caller tells the tuner lastWasInvalid
// and moves on without recording a timing.
type SamplingInvalidError struct {
	Reason string
}

func (e *SamplingInvalidError) Error() string {
	return fmt.Sprintf("autopas: sample invalid: %s", e.Reason)
}

// TuningUnderDeterminedError is raised when a tuning strategy is asked for
// the current optimum before any evidence has been collected for the
// active phase. Unrecoverable.
type TuningUnderDeterminedError struct {
	Phase int
}

func (e *TuningUnderDeterminedError) Error() string {
	return fmt.Sprintf("autopas: tuning phase %d has no evidence to select an optimum from", e.Phase)
}
