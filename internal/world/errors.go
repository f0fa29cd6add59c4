package world

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates parameters that cannot produce a map.
	ErrInvalidParams = errors.New("world: invalid parameters")
	// ErrInsufficientCandidates indicates fewer candidates than principal rooms.
	ErrInsufficientCandidates = errors.New("world: insufficient candidates")
	// ErrSeparationDidNotConverge indicates overlaps left after the step budget.
	ErrSeparationDidNotConverge = errors.New("world: separation did not converge")
	// ErrDegenerateTriangulationInput indicates fewer than three usable principal rooms.
	ErrDegenerateTriangulationInput = errors.New("world: degenerate triangulation input")
	// ErrNoSpanningTree indicates a disconnected connectivity graph. This is
	// an internal invariant violation, not a parameter problem.
	ErrNoSpanningTree = errors.New("world: no spanning tree")
)

// Stage names a step of the generation pipeline.
type Stage string

const (
	StageValidate    Stage = "validate"
	StageSample      Stage = "sample"
	StageSeparate    Stage = "separate"
	StageSelect      Stage = "select"
	StageTriangulate Stage = "triangulate"
	StageSpan        Stage = "span"
	StageRasterize   Stage = "rasterize"
)

// StageError reports which stage failed. errors.Is matches both Kind and the
// underlying stage error.
type StageError struct {
	Stage Stage
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("world: %s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsInvariantViolation reports errors that point at a bug rather than at
// bad parameters.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrNoSpanningTree)
}

// IsParamError reports errors caused by the caller's parameters.
func IsParamError(err error) bool {
	return errors.Is(err, ErrInvalidParams) ||
		errors.Is(err, ErrInsufficientCandidates) ||
		errors.Is(err, ErrDegenerateTriangulationInput)
}
