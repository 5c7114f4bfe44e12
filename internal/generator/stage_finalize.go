package generator

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/links"
	"git.home.luguber.info/inful/docrender/internal/logfields"
)

// stageFinalize writes the root landing page and folds collected diagnostics
// into the report. It runs while output is still staged so the landing page
// is promoted together with everything else.
func stageFinalize(_ context.Context, bs *BuildState) error {
	if err := writeLandingPage(bs); err != nil {
		return newWarnStageError(StageFinalize, err)
	}

	unresolved := 0
	for _, d := range bs.collector.All() {
		if d.Severity == diagnostics.SeverityWarning && strings.HasPrefix(d.Message, "unresolved") {
			unresolved++
		}
	}
	bs.Report.UnresolvedLinks = unresolved
	bs.recorder.AddUnresolvedLinks(unresolved)
	if n := bs.collector.Count(diagnostics.SeverityError); n > 0 {
		slog.Warn("build completed with document errors", logfields.Pages(n), logfields.RunID(bs.Report.RunID))
	}
	return nil
}

// writeLandingPage emits a minimal root index linking every module in the
// navigation index, reusing the shared stylesheet.
func writeLandingPage(bs *BuildState) error {
	g := bs.Generator
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\" />")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1" />`)
	b.WriteString("<title>" + html.EscapeString(g.cfg.Site.Title) + "</title>")
	b.WriteString(`<link rel="stylesheet" href="css/main.css" /></head><body>`)
	b.WriteString(`<main class="content"><h1>` + html.EscapeString(g.cfg.Site.Title) + "</h1>")
	if bs.Nav != nil && len(bs.Nav.Modules) > 0 {
		b.WriteString(`<ul class="module-list">`)
		for _, m := range bs.Nav.Modules {
			b.WriteString(`<li><a href="` + html.EscapeString(links.RelativeLink(m.Path, 0)) + `">`)
			b.WriteString(html.EscapeString(m.Title) + "</a></li>")
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</main></body></html>\n")
	dest := filepath.Join(g.stageDir, "index.html")
	if err := atomic.WriteFile(dest, bytes.NewReader([]byte(b.String()))); err != nil {
		return fmt.Errorf("write landing page: %w", err)
	}
	return nil
}
