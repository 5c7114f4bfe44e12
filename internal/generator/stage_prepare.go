package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docrender/internal/model"
	"git.home.luguber.info/inful/docrender/internal/page"
	"git.home.luguber.info/inful/docrender/internal/postprocess"
	"git.home.luguber.info/inful/docrender/internal/rendercache"
)

// stagePrepareOutput creates the staging directory and, when configured,
// opens the render cache.
func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	if err := g.beginStaging(); err != nil {
		return newFatalStageError(StagePrepareOutput, err)
	}
	if g.cfg.Output.CachePath != "" {
		cache, err := rendercache.Open(g.cfg.Output.CachePath)
		if err != nil {
			// A broken cache never blocks a build; fall back to full rendering.
			return newWarnStageError(StagePrepareOutput, fmt.Errorf("render cache unavailable: %w", err))
		}
		bs.Cache = cache
	}
	return nil
}

// stageLoadNavigation loads the navigation index and constructs the page
// assembler and link post-processor over it.
func stageLoadNavigation(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	nav, err := model.LoadNavigationIndex(g.cfg.Input.NavigationFile)
	if err != nil {
		return newFatalStageError(StageLoadNavigation, fmt.Errorf("load navigation index: %w", err))
	}
	bs.Nav = nav
	bs.Assembler = page.New(nav, page.Options{
		SiteTitle:     g.cfg.Site.Title,
		FooterHTML:    g.footerHTML,
		SearchEnabled: g.cfg.Site.Search,
		Sink:          bs.sink,
	})
	bs.Processor = postprocess.New(documentedModules(g.cfg.Modules.Documented, nav), g.cfg.Modules.ExternalURLs, bs.sink)
	return nil
}

// documentedModules merges the configured module map with the modules present
// in the navigation index, so index modules resolve without configuration.
func documentedModules(configured map[string]string, nav *model.NavigationIndex) map[string]string {
	merged := make(map[string]string, len(configured)+len(nav.Modules))
	for _, m := range nav.Modules {
		merged[m.Title] = m.Path
	}
	for name, id := range configured {
		merged[name] = id
	}
	return merged
}

// stageDiscoverDocuments walks the documents directory collecting content
// JSON files. The navigation index file is excluded when it lives inside.
func stageDiscoverDocuments(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	navPath := filepath.Clean(g.cfg.Input.NavigationFile)
	var files []DocFile
	err := filepath.WalkDir(g.cfg.Input.DocumentsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		if filepath.Clean(path) == navPath {
			return nil
		}
		files = append(files, DocFile{Path: path})
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(StageDiscoverDocuments, ctx.Err())
		}
		return newFatalStageError(StageDiscoverDocuments, fmt.Errorf("walk documents: %w", err))
	}
	if len(files) == 0 {
		return newWarnStageError(StageDiscoverDocuments, fmt.Errorf("no content documents under %s", g.cfg.Input.DocumentsDir))
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	bs.Docs = files
	bs.Report.Documents = len(files)
	return nil
}
