package generator

import (
	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/metrics"
	"git.home.luguber.info/inful/docrender/internal/model"
	"git.home.luguber.info/inful/docrender/internal/page"
	"git.home.luguber.info/inful/docrender/internal/postprocess"
	"git.home.luguber.info/inful/docrender/internal/rendercache"
)

// DocFile is one discovered content document on disk.
type DocFile struct {
	Path string
}

// BuildState carries mutable state across stages. Stages run sequentially;
// only the render worker pool mutates it concurrently, behind its own mutex.
type BuildState struct {
	Generator *Generator
	Report    *BuildReport

	Nav        *model.NavigationIndex
	Docs       []DocFile
	Assembler  *page.Assembler
	Processor  *postprocess.Processor
	Cache      *rendercache.Cache
	ConfigHash string

	collector *diagnostics.Collector
	sink      diagnostics.Sink
	recorder  metrics.Recorder
}

func newBuildState(g *Generator, report *BuildReport) *BuildState {
	collector := &diagnostics.Collector{}
	return &BuildState{
		Generator: g,
		Report:    report,
		collector: collector,
		sink:      diagnostics.Multi{collector, g.sink},
		recorder:  g.recorder,
	}
}

func resultFor(kind StageErrorKind) metrics.ResultLabel {
	switch kind {
	case StageErrorWarning:
		return metrics.ResultWarning
	case StageErrorCanceled:
		return metrics.ResultCanceled
	case StageErrorFatal:
		return metrics.ResultFatal
	default:
		return metrics.ResultSuccess
	}
}
