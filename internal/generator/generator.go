// Package generator orchestrates a documentation build: loading the
// navigation index, rendering every content document to static HTML through a
// worker pool, copying assets, and atomically promoting the staged output.
package generator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/docrender/internal/config"
	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/logfields"
	"git.home.luguber.info/inful/docrender/internal/metrics"
)

// Generator owns one build configuration and produces sites from it. A
// Generator may run multiple builds sequentially (watch and daemon modes);
// concurrent Build calls are not supported.
type Generator struct {
	cfg       *config.Config
	outputDir string
	stageDir  string

	footerHTML  string
	minifier    *minify.M
	recorder    metrics.Recorder
	prom        *metrics.PrometheusRecorder
	sink        diagnostics.Sink
	incremental bool
	concurrency int
}

// New constructs a Generator. The footer markdown is converted once here;
// a malformed footer degrades to no extra footer content.
func New(cfg *config.Config) *Generator {
	g := &Generator{
		cfg:       cfg,
		outputDir: cfg.Output.Directory,
		recorder:  metrics.NoopRecorder{},
		sink:      diagnostics.SlogSink{},
	}
	if cfg.Site.FooterMarkdown != "" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(cfg.Site.FooterMarkdown), &buf); err != nil {
			slog.Warn("footer markdown did not convert, omitting", logfields.Error(err))
		} else {
			g.footerHTML = buf.String()
		}
	}
	if cfg.Site.Minify {
		m := minify.New()
		m.AddFunc("text/html", mhtml.Minify)
		g.minifier = m
	}
	return g
}

// SetRecorder injects a metrics recorder. Returns the generator for chaining.
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		g.recorder = metrics.NoopRecorder{}
		return g
	}
	g.recorder = r
	if p, ok := r.(*metrics.PrometheusRecorder); ok {
		g.prom = p
	}
	return g
}

// SetSink injects a diagnostics sink used alongside the per-run collector.
func (g *Generator) SetSink(s diagnostics.Sink) *Generator {
	if s == nil {
		g.sink = diagnostics.Discard{}
		return g
	}
	g.sink = s
	return g
}

// SetIncremental enables fingerprint-based page reuse across runs.
func (g *Generator) SetIncremental(on bool) *Generator {
	g.incremental = on
	return g
}

// SetConcurrency bounds the render worker pool. Zero means NumCPU.
func (g *Generator) SetConcurrency(n int) *Generator {
	g.concurrency = n
	return g
}

// Build runs the full pipeline and returns the report. The report is non-nil
// even on failure so callers can log partial progress.
func (g *Generator) Build(ctx context.Context) (*BuildReport, error) {
	runID := uuid.NewString()
	slog.Info("starting site build",
		logfields.RunID(runID),
		logfields.Output(g.outputDir))

	report := newBuildReport(runID)
	bs := newBuildState(g, report)
	bs.ConfigHash = g.computeConfigHash()

	stages := []namedStage{
		{StagePrepareOutput, stagePrepareOutput},
		{StageLoadNavigation, stageLoadNavigation},
		{StageDiscoverDocuments, stageDiscoverDocuments},
		{StageRenderPages, stageRenderPages},
		{StageCopyAssets, stageCopyAssets},
		{StageFinalize, stageFinalize},
	}

	err := runStages(ctx, bs, stages)
	if bs.Cache != nil {
		if cerr := bs.Cache.Close(); cerr != nil {
			slog.Debug("render cache close failed", logfields.Error(cerr))
		}
	}
	if err != nil {
		report.deriveOutcome()
		report.finish()
		g.abortStaging()
		g.recordBuild(report)
		return report, err
	}

	report.deriveOutcome()
	report.finish()
	if err := g.finalizeStaging(); err != nil {
		report.Outcome = OutcomeFailed
		return report, fmt.Errorf("finalize staging: %w", err)
	}
	if err := report.Persist(g.outputDir); err != nil {
		slog.Warn("failed to persist build report", logfields.Error(err))
	}
	g.recordBuild(report)

	slog.Info("site build completed",
		logfields.RunID(runID),
		logfields.Output(g.outputDir),
		logfields.Pages(report.RenderedPages),
		slog.Int("skipped", report.SkippedPages),
		slog.Int("unresolved_links", report.UnresolvedLinks),
		slog.String("outcome", string(report.Outcome)))
	return report, nil
}

// recordBuild publishes build-level metrics and flushes the textfile export
// when one is configured.
func (g *Generator) recordBuild(report *BuildReport) {
	g.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	g.recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(report.Outcome))
	if g.prom != nil && g.cfg.Metrics.TextfilePath != "" {
		if err := g.prom.WriteTextfile(g.cfg.Metrics.TextfilePath); err != nil {
			slog.Warn("failed to write metrics textfile", logfields.Error(err))
		}
	}
}

// beginStaging creates a fresh sibling staging directory for atomic output.
func (g *Generator) beginStaging() error {
	stage := g.outputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("clear stale staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	g.stageDir = stage
	return nil
}

// finalizeStaging promotes staging to the final output location. The
// previous output is moved aside first so readers never observe a
// half-written site.
func (g *Generator) finalizeStaging() error {
	if g.stageDir == "" {
		return fmt.Errorf("no staging directory initialized")
	}
	prev := g.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove stale backup: %w", err)
	}
	if _, err := os.Stat(g.outputDir); err == nil {
		if err := os.Rename(g.outputDir, prev); err != nil {
			return fmt.Errorf("move previous output aside: %w", err)
		}
	}
	if err := os.Rename(g.stageDir, g.outputDir); err != nil {
		return fmt.Errorf("promote staging directory: %w", err)
	}
	g.stageDir = ""
	if g.cfg.Output.Clean {
		if err := os.RemoveAll(prev); err != nil {
			slog.Debug("failed to remove previous output backup", logfields.Error(err))
		}
	}
	return nil
}

// abortStaging removes the staging directory after a failed build.
func (g *Generator) abortStaging() {
	if g.stageDir == "" {
		return
	}
	if err := os.RemoveAll(g.stageDir); err != nil {
		slog.Debug("failed to remove staging directory", logfields.Error(err))
	}
	g.stageDir = ""
}

// computeConfigHash fingerprints the config fields that affect rendered
// output, so incremental builds re-render everything when they change.
func (g *Generator) computeConfigHash() string {
	h := sha256.New()
	cfg := g.cfg
	h.Write([]byte(cfg.Site.Title))
	h.Write([]byte(cfg.Site.FooterMarkdown))
	h.Write([]byte(fmt.Sprintf("search=%t minify=%t", cfg.Site.Search, cfg.Site.Minify)))
	writeSortedMap(h, cfg.Modules.Documented)
	writeSortedMap(h, cfg.Modules.ExternalURLs)
	return hex.EncodeToString(h.Sum(nil))
}

func writeSortedMap(h io.Writer, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte(m[k]))
	}
}
