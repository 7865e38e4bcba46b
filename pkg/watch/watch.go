// Package watch monitors a directory for Other Support documents and
// converts each new or modified .docx into its submission XML, written next
// to the source file.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/fsnotify.v1"

	"github.com/joho9119/other-support-xml-gen/pkg/convert"
	"github.com/joho9119/other-support-xml-gen/pkg/logger"
)

// Watcher converts every .docx that appears in a watched directory.
type Watcher struct {
	converter *convert.Converter
	log       logger.Logger
	outDir    string
}

// New creates a Watcher that writes converted XML into outDir, or next to
// each source document when outDir is empty.
func New(converter *convert.Converter, log logger.Logger, outDir string) *Watcher {
	return &Watcher{converter: converter, log: log, outDir: outDir}
}

// Run watches dir until the context is canceled. Existing files are not
// converted; only create and write events trigger conversion. Conversion
// failures are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("checking watch directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	w.log.Info("watching for Other Support documents", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !isConvertible(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.convertFile(ctx, event.Name)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch error", "err", err)
		}
	}
}

// convertFile converts a single document and writes the XML beside it or
// into the configured output directory.
func (w *Watcher) convertFile(ctx context.Context, path string) {
	result, err := w.converter.Convert(ctx, path)
	if err != nil {
		w.log.Error("conversion failed", "file", path, "err", err)
		return
	}

	outDir := w.outDir
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	outPath := filepath.Join(outDir, result.FileName)

	if err := os.WriteFile(outPath, []byte(result.XML), 0o644); err != nil {
		w.log.Error("writing XML failed", "file", outPath, "err", err)
		return
	}
	w.log.Info("converted", "file", path, "out", outPath,
		"supports", len(result.Profile.Funding))
}

// isConvertible reports whether a path names a document the watcher should
// convert. Office lock files (~$...) are skipped.
func isConvertible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(base), ".docx")
}
