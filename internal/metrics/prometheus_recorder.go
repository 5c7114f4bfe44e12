package metrics

import (
	"fmt"
	"os"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	registry          *prom.Registry
	stageDuration     *prom.HistogramVec
	buildDuration     prom.Histogram
	stageResults      *prom.CounterVec
	buildOutcome      *prom.CounterVec
	pagesRendered     prom.Counter
	unresolvedLinks   prom.Counter
	renderConcurrency prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docrender",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual generation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docrender",
			Name:      "build_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docrender",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docrender",
			Name:      "build_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		pr.pagesRendered = prom.NewCounter(prom.CounterOpts{
			Namespace: "docrender",
			Name:      "pages_rendered_total",
			Help:      "Pages rendered and written",
		})
		pr.unresolvedLinks = prom.NewCounter(prom.CounterOpts{
			Namespace: "docrender",
			Name:      "unresolved_links_total",
			Help:      "Cross-document links that resolved nowhere",
		})
		pr.renderConcurrency = prom.NewGauge(prom.GaugeOpts{
			Namespace: "docrender",
			Name:      "render_concurrency",
			Help:      "Worker count used for the render stage",
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.pagesRendered, pr.unresolvedLinks, pr.renderConcurrency)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddPagesRendered(n int) {
	if p == nil || p.pagesRendered == nil || n <= 0 {
		return
	}
	p.pagesRendered.Add(float64(n))
}

func (p *PrometheusRecorder) AddUnresolvedLinks(n int) {
	if p == nil || p.unresolvedLinks == nil || n <= 0 {
		return
	}
	p.unresolvedLinks.Add(float64(n))
}

func (p *PrometheusRecorder) SetRenderConcurrency(n int) {
	if p == nil || p.renderConcurrency == nil {
		return
	}
	p.renderConcurrency.Set(float64(n))
}

// WriteTextfile dumps the registry in textfile-collector format. The
// generator has no HTTP surface, so metrics leave the process as a file a
// node_exporter can pick up.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil {
		return nil
	}
	families, err := p.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- operator configured path
	if err != nil {
		return fmt.Errorf("create metrics textfile: %w", err)
	}
	defer f.Close()
	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
