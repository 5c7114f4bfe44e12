package generator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// assetDirs are the asset roots copied verbatim when present under the input
// assets directory. Pages reference them with depth-prefixed relative paths.
var assetDirs = []string{"css", "js", "images", "downloads", "videos"}

// stageCopyAssets copies static assets into staging and guarantees the
// stylesheet every page links exists, falling back to the embedded default.
func stageCopyAssets(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	for _, dir := range assetDirs {
		src := filepath.Join(g.cfg.Input.AssetsDir, dir)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := copyTree(ctx, src, filepath.Join(g.stageDir, dir)); err != nil {
			if ctx.Err() != nil {
				return newCanceledStageError(StageCopyAssets, ctx.Err())
			}
			return newWarnStageError(StageCopyAssets, fmt.Errorf("copy %s assets: %w", dir, err))
		}
	}
	mainCSS := filepath.Join(g.stageDir, "css", "main.css")
	if _, err := os.Stat(mainCSS); err != nil {
		if err := os.MkdirAll(filepath.Dir(mainCSS), 0o755); err != nil {
			return newWarnStageError(StageCopyAssets, fmt.Errorf("write default stylesheet: %w", err))
		}
		if err := atomic.WriteFile(mainCSS, bytes.NewReader([]byte(defaultStylesheet))); err != nil {
			return newWarnStageError(StageCopyAssets, fmt.Errorf("write default stylesheet: %w", err))
		}
	}
	return nil
}

func copyTree(ctx context.Context, src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		out, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}
