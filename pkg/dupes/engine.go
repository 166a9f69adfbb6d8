package dupes

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mvaneijk/tidycat/pkg/logging"
	"github.com/mvaneijk/tidycat/pkg/models"
	"github.com/mvaneijk/tidycat/pkg/output"
	"github.com/mvaneijk/tidycat/pkg/prompt"
)

// Engine discovers duplicate sets and deletes every member except the
// retained one.
type Engine struct {
	grouper  *Grouper
	confirm  prompt.Confirmer
	reporter output.Reporter
	logger   logging.Logger
}

// NewEngine creates a duplicate engine
func NewEngine(grouper *Grouper, confirm prompt.Confirmer, reporter output.Reporter, logger logging.Logger) *Engine {
	return &Engine{
		grouper:  grouper,
		confirm:  confirm,
		reporter: reporter,
		logger:   logger,
	}
}

// Run groups the combined file list and processes each duplicate set. In
// interactive mode one yes/no confirmation (default no) governs each whole
// set; declining skips the set entirely. Deletion failures are recorded
// per file and never abort the remaining sets. An empty input reports zero
// duplicates and succeeds.
//
// The returned error is non-nil only for fatal conditions: a missing
// terminal or an unrecognized response.
func (e *Engine) Run(records []models.FileRecord) (models.Statistics, []models.RunError, error) {
	var stats models.Statistics
	var errors []models.RunError

	sets := e.grouper.Group(records)
	stats.DuplicateSets = len(sets)

	if len(sets) == 0 {
		e.reporter.Notice("no duplicates found")
		return stats, nil, nil
	}

	for _, set := range sets {
		retained := set.Files[set.Retained()]
		candidates := set.Candidates()

		// Automatic mode deletes unprompted; the interactive
		// empty-answer default is "no", which skips the whole set.
		ok, err := e.confirm.Confirm(e.describe(retained, candidates), true, false)
		if err != nil {
			return stats, errors, fmt.Errorf("duplicate confirmation failed: %w", err)
		}
		if !ok {
			for _, f := range candidates {
				e.reporter.Action(models.VerbSkipped, f.Path, "duplicate set declined")
				stats.FilesSkipped++
			}
			continue
		}

		e.reporter.Action(models.VerbRetained, retained.Path, "")
		for _, f := range candidates {
			if err := os.Remove(f.Path); err != nil {
				e.reporter.Diagnostic(f.Path, err)
				e.logger.Error("failed to delete duplicate", err, logging.Fields{"path": f.Path})
				errors = append(errors, models.RunError{
					Path:      f.Path,
					Operation: models.OpDuplicates,
					Message:   err.Error(),
					Timestamp: time.Now(),
				})
				stats.FilesErrored++
				continue
			}
			e.reporter.Action(models.VerbDeleted, f.Path, "duplicate of "+retained.Path)
			e.logger.Info("deleted duplicate", logging.Fields{"path": f.Path, "retained": retained.Path})
			stats.FilesDeleted++
			stats.BytesFreed += f.Size
		}
	}

	return stats, errors, nil
}

// describe builds the one-batch confirmation message for a duplicate set.
func (e *Engine) describe(retained models.FileRecord, candidates []models.FileRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "duplicate set (%d bytes each):\n", retained.Size)
	fmt.Fprintf(&b, "  keep   %s\n", retained.Path)
	for _, f := range candidates {
		fmt.Fprintf(&b, "  delete %s\n", f.Path)
	}
	b.WriteString("delete the listed files?")
	return b.String()
}
