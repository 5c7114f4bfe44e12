package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures high-level metrics about one generation run.
type BuildReport struct {
	SchemaVersion   int
	RunID           string
	Start           time.Time
	End             time.Time
	Documents       int // content documents discovered
	RenderedPages   int // pages rendered and written this run
	SkippedPages    int // pages reused from the previous run (incremental)
	UnresolvedLinks int // link targets that degraded to inactive spans
	Errors          []error
	Warnings        []error
	StageDurations  map[string]time.Duration
	StageErrorKinds map[string]string
	Outcome         BuildOutcome
}

func newBuildReport(runID string) *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		RunID:           runID,
		Start:           time.Now(),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[string]string),
	}
}

func (r *BuildReport) finish() { r.End = time.Now() }

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("run=%s documents=%d rendered=%d skipped=%d unresolved=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.RunID, r.Documents, r.RenderedPages, r.SkippedPages, r.UnresolvedLinks,
		dur.Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), r.Outcome)
}

// deriveOutcome sets Outcome from recorded errors and warnings.
func (r *BuildReport) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Persist writes build-report.json and build-report.txt into root. Best
// effort; errors are returned for caller logging but do not change the
// build outcome.
func (r *BuildReport) Persist(root string) error {
	if r.End.IsZero() {
		r.finish()
		r.deriveOutcome()
	}
	jb, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := atomic.WriteFile(filepath.Join(root, "build-report.json"), bytes.NewReader(jb)); err != nil {
		return fmt.Errorf("write report json: %w", err)
	}
	if err := atomic.WriteFile(filepath.Join(root, "build-report.txt"), bytes.NewReader([]byte(r.Summary()+"\n"))); err != nil {
		return fmt.Errorf("write report summary: %w", err)
	}
	return nil
}

// buildReportSerializable mirrors BuildReport with string errors for JSON output.
type buildReportSerializable struct {
	SchemaVersion   int                      `json:"schema_version"`
	RunID           string                   `json:"run_id"`
	Start           time.Time                `json:"start"`
	End             time.Time                `json:"end"`
	Documents       int                      `json:"documents"`
	RenderedPages   int                      `json:"rendered_pages"`
	SkippedPages    int                      `json:"skipped_pages"`
	UnresolvedLinks int                      `json:"unresolved_links"`
	Errors          []string                 `json:"errors"`
	Warnings        []string                 `json:"warnings"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds"`
	Outcome         string                   `json:"outcome"`
}

func (r *BuildReport) serializable() *buildReportSerializable {
	s := &buildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		RunID:           r.RunID,
		Start:           r.Start,
		End:             r.End,
		Documents:       r.Documents,
		RenderedPages:   r.RenderedPages,
		SkippedPages:    r.SkippedPages,
		UnresolvedLinks: r.UnresolvedLinks,
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		StageDurations:  r.StageDurations,
		StageErrorKinds: r.StageErrorKinds,
		Outcome:         string(r.Outcome),
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	return s
}
