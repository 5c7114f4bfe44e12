package generator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// Stage names, used for report keys and metric labels.
const (
	StagePrepareOutput     = "prepare_output"
	StageLoadNavigation    = "load_navigation"
	StageDiscoverDocuments = "discover_documents"
	StageRenderPages       = "render_pages"
	StageCopyAssets        = "copy_assets"
	StageFinalize          = "finalize"
)

type namedStage struct {
	name string
	fn   Stage
}

// runStages executes stages in order, recording timing and stopping on first
// fatal or canceled error. Warnings are recorded and the run continues.
func runStages(ctx context.Context, bs *BuildState, stages []namedStage) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.StageErrorKinds[st.name] = string(se.Kind)
			bs.recorder.IncStageResult(st.name, resultFor(se.Kind))
			return se
		default:
		}
		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.name] = dur
		bs.recorder.ObserveStageDuration(st.name, dur)
		if err == nil {
			bs.recorder.IncStageResult(st.name, resultFor(""))
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			// Unknown errors abort the build.
			se = newFatalStageError(st.name, err)
		}
		bs.Report.StageErrorKinds[st.name] = string(se.Kind)
		bs.recorder.IncStageResult(st.name, resultFor(se.Kind))
		switch se.Kind {
		case StageErrorWarning:
			bs.Report.Warnings = append(bs.Report.Warnings, se)
		default:
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		}
	}
	return nil
}
