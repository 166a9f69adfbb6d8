package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mvaneijk/tidycat/pkg/logging"
	"github.com/mvaneijk/tidycat/pkg/models"
	"github.com/mvaneijk/tidycat/pkg/output"
	"github.com/mvaneijk/tidycat/pkg/walker"
)

// Engine merges source catalogs into one destination catalog, preserving
// relative paths. Transfers are sequential; each invocation re-walks the
// sources, so running twice on unchanged trees moves nothing the second
// time (every conflict defaults to Keep).
type Engine struct {
	walker     *walker.Walker
	resolver   *Resolver
	reporter   output.Reporter
	logger     logging.Logger
	bufferSize int
}

// NewEngine creates a transfer engine
func NewEngine(w *walker.Walker, resolver *Resolver, reporter output.Reporter, logger logging.Logger, bufferSize int) *Engine {
	if bufferSize < 4096 {
		bufferSize = 65536
	}
	return &Engine{
		walker:     w,
		resolver:   resolver,
		reporter:   reporter,
		logger:     logger,
		bufferSize: bufferSize,
	}
}

// Run merges each source catalog into dest in the order given; later
// sources may conflict against files transferred from earlier ones within
// the same run. The destination is created when absent. A source that
// canonicalizes to the destination itself is skipped with a notice.
//
// Per-file failures are recorded and the run continues; the returned error
// is non-nil only for fatal conditions (missing terminal, unrecognized
// interactive response).
func (e *Engine) Run(dest string, sources []string, mode models.TransferMode) (models.Statistics, []models.RunError, error) {
	var stats models.Statistics
	var errors []models.RunError

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return stats, errors, fmt.Errorf("failed to create destination catalog: %w", err)
	}

	destCanon, err := canonical(dest)
	if err != nil {
		return stats, errors, fmt.Errorf("failed to resolve destination catalog: %w", err)
	}

	for _, source := range sources {
		srcCanon, err := canonical(source)
		if err != nil {
			e.reporter.Diagnostic(source, err)
			continue
		}
		if srcCanon == destCanon {
			// Self-merge guard: merging a catalog into itself is a
			// no-op, not an error.
			e.reporter.Notice("skipping %s: source is the destination catalog", source)
			e.logger.Info("skipped self-merge", logging.Fields{"catalog": source})
			continue
		}

		records, err := e.walker.Walk(source)
		if err != nil {
			return stats, errors, err
		}
		stats.FilesScanned += len(records)

		for _, rec := range records {
			fatal, err := e.transferFile(rec, destCanon, mode, &stats)
			if fatal {
				return stats, errors, err
			}
			if err != nil {
				e.reporter.Diagnostic(rec.Path, err)
				e.logger.Error("transfer failed", err, logging.Fields{"path": rec.Path})
				errors = append(errors, models.RunError{
					Path:      rec.Path,
					Operation: models.Operation(mode),
					Message:   err.Error(),
					Timestamp: time.Now(),
				})
				stats.FilesErrored++
			}
		}
	}

	return stats, errors, nil
}

// transferFile places one source file under the destination root. The
// bool result marks fatal errors that must abort the whole run.
func (e *Engine) transferFile(rec models.FileRecord, dest string, mode models.TransferMode, stats *models.Statistics) (bool, error) {
	dstPath := filepath.Join(dest, rec.RelativePath)

	dstInfo, err := os.Stat(dstPath)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
			return false, fmt.Errorf("failed to create destination directory: %w", err)
		}
		if mode == models.ModeMove {
			if err := e.moveFile(rec.Path, dstPath); err != nil {
				return false, err
			}
			e.reporter.Action(models.VerbMoved, rec.Path, "to "+dstPath)
			stats.FilesMoved++
		} else {
			if err := e.copyFile(rec.Path, dstPath); err != nil {
				return false, err
			}
			e.reporter.Action(models.VerbCopied, rec.Path, "to "+dstPath)
			stats.FilesCopied++
		}
		stats.BytesTransferred += rec.Size
		return false, nil

	case err != nil:
		return false, fmt.Errorf("failed to stat destination: %w", err)
	}

	decision, err := e.resolver.Resolve(rec, dstPath, dstInfo.ModTime())
	if err != nil {
		// Unrecognized response or missing terminal: abort the run.
		return true, err
	}

	switch decision {
	case models.DecisionReplace:
		if err := e.copyFile(rec.Path, dstPath); err != nil {
			return false, err
		}
		if mode == models.ModeMove {
			if err := os.Remove(rec.Path); err != nil {
				return false, fmt.Errorf("failed to remove source after move: %w", err)
			}
		}
		e.reporter.Action(models.VerbReplaced, dstPath, "with "+rec.Path)
		e.logger.Info("replaced destination file", logging.Fields{"src": rec.Path, "dst": dstPath})
		stats.FilesReplaced++
		stats.BytesTransferred += rec.Size

	case models.DecisionKeep:
		// Keep never deletes the source, even under move.
		e.reporter.Action(models.VerbKept, dstPath, "source "+rec.Path)
		stats.FilesKept++

	case models.DecisionSkip:
		e.reporter.Action(models.VerbSkipped, rec.Path, "conflict with "+dstPath)
		stats.FilesSkipped++
	}

	return false, nil
}

// copyFile copies src to dst, preserving modification time and permission
// bits.
func (e *Engine) copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	buf := make([]byte, e.bufferSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy contents: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finalize destination: %w", err)
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}

	return nil
}

// moveFile renames src to dst, falling back to copy+remove across
// filesystems.
func (e *Engine) moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := e.copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source after move: %w", err)
	}
	return nil
}

// canonical resolves path to an absolute form with symlinks evaluated, so
// the self-merge guard compares filesystem locations rather than spellings.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Path may not exist yet; the cleaned absolute form is enough.
		return abs, nil
	}
	return resolved, nil
}
