package generator

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/logfields"
	"git.home.luguber.info/inful/docrender/internal/model"
	"git.home.luguber.info/inful/docrender/internal/rendercache"
)

// stageRenderPages renders every discovered document through a bounded worker
// pool. A failure on one document is reported and the rest of the run
// continues; only a fully empty result is surfaced as a stage warning.
func stageRenderPages(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	workers := g.concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	bs.recorder.SetRenderConcurrency(workers)

	jobs := make(chan DocFile)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		rendered int
		skipped  int
		failed   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for df := range jobs {
				outcome := renderOne(bs, df)
				mu.Lock()
				switch outcome {
				case renderWritten:
					rendered++
				case renderSkipped:
					skipped++
				case renderFailed:
					failed++
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, df := range bs.Docs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- df:
		}
	}
	close(jobs)
	wg.Wait()

	bs.Report.RenderedPages = rendered
	bs.Report.SkippedPages = skipped
	bs.recorder.AddPagesRendered(rendered)

	if ctx.Err() != nil {
		return newCanceledStageError(StageRenderPages, ctx.Err())
	}
	if rendered == 0 && skipped == 0 && failed > 0 {
		return newWarnStageError(StageRenderPages, fmt.Errorf("all %d documents failed to render", failed))
	}
	if failed > 0 {
		return newWarnStageError(StageRenderPages, fmt.Errorf("%d of %d documents failed to render", failed, len(bs.Docs)))
	}
	return nil
}

type renderOutcome int

const (
	renderWritten renderOutcome = iota
	renderSkipped
	renderFailed
)

// renderOne processes a single document end to end. Panics from malformed
// content are confined to the document they came from.
func renderOne(bs *BuildState, df DocFile) (outcome renderOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = renderFailed
			bs.sink.Emit(diagnostics.Diagnostic{
				Severity: diagnostics.SeverityError,
				Message:  fmt.Sprintf("panic rendering %s: %v", df.Path, r),
				Source:   df.Path,
			})
		}
	}()

	data, err := os.ReadFile(df.Path)
	if err != nil {
		bs.sink.Emit(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityError,
			Message:  fmt.Sprintf("read document: %v", err),
			Source:   df.Path,
		})
		return renderFailed
	}
	doc, err := model.DecodeDocument(data)
	if err != nil {
		bs.sink.Emit(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityError,
			Message:  fmt.Sprintf("decode document: %v", err),
			Source:   df.Path,
		})
		return renderFailed
	}

	rel := pageRelPath(doc.Identifier)
	dest := filepath.Join(bs.Generator.stageDir, rel)

	fingerprint := rendercache.Fingerprint(data, bs.ConfigHash)
	if bs.Generator.incremental && bs.Cache != nil && bs.Cache.Unchanged(doc.Identifier, fingerprint) {
		if reusePreviousPage(bs.Generator.outputDir, rel, dest) {
			return renderSkipped
		}
	}

	html := bs.Assembler.Page(doc)
	html = bs.Processor.Process(html, doc.Depth())
	out := []byte(html)
	if bs.Generator.minifier != nil {
		if min, err := bs.Generator.minifier.Bytes("text/html", out); err == nil {
			out = min
		} else {
			bs.sink.Emit(diagnostics.Diagnostic{
				Severity: diagnostics.SeverityWarning,
				Message:  fmt.Sprintf("minify failed, writing unminified page: %v", err),
				Source:   doc.Identifier,
			})
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		bs.sink.Emit(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityError,
			Message:  fmt.Sprintf("create page directory: %v", err),
			Source:   doc.Identifier,
		})
		return renderFailed
	}
	if err := atomic.WriteFile(dest, bytes.NewReader(out)); err != nil {
		bs.sink.Emit(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityError,
			Message:  fmt.Sprintf("write page: %v", err),
			Source:   doc.Identifier,
		})
		return renderFailed
	}
	if bs.Cache != nil {
		if err := bs.Cache.Store(doc.Identifier, fingerprint); err != nil {
			slog.Debug("render cache store failed", logfields.Document(doc.Identifier), logfields.Error(err))
		}
	}
	return renderWritten
}

// pageRelPath maps a document identifier to its output location. The same
// normalization backs relative hrefs, so on-disk layout and links agree.
func pageRelPath(identifier string) string {
	norm := strings.ToLower(strings.Trim(identifier, "/"))
	return filepath.Join(filepath.FromSlash(norm), "index.html")
}

// reusePreviousPage copies an unchanged page from the previous output into
// staging. Returns false when the previous page is missing, in which case the
// caller renders from scratch.
func reusePreviousPage(outputDir, rel, dest string) bool {
	prev, err := os.ReadFile(filepath.Join(outputDir, rel))
	if err != nil {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false
	}
	return atomic.WriteFile(dest, bytes.NewReader(prev)) == nil
}
