// Package transfer merges source catalogs into a destination catalog with
// copy or move semantics, resolving per-file conflicts.
package transfer

import (
	"fmt"
	"time"

	"github.com/mvaneijk/tidycat/pkg/models"
	"github.com/mvaneijk/tidycat/pkg/prompt"
)

// Resolver decides what happens when a transfer's computed destination
// path already has a file at it.
type Resolver struct {
	confirm prompt.Confirmer
}

// NewResolver creates a conflict resolver
func NewResolver(confirm prompt.Confirmer) *Resolver {
	return &Resolver{confirm: confirm}
}

// Resolve returns the decision for the collision between src and the
// existing file at dstPath. The computed default is Replace when the
// source is strictly newer than the destination and Keep otherwise; an
// unreadable timestamp counts as the epoch, so such a file never wins.
// In automatic mode the default is returned directly; otherwise the
// operator is prompted, and an unrecognized response aborts the whole run.
func (r *Resolver) Resolve(src models.FileRecord, dstPath string, dstModTime time.Time) (models.ConflictDecision, error) {
	def := models.DecisionKeep
	if src.ModTime.After(dstModTime) {
		def = models.DecisionReplace
	}

	msg := fmt.Sprintf("conflict:\n  source      %s (%s)\n  destination %s (%s)\n",
		src.Path, formatModTime(src.ModTime),
		dstPath, formatModTime(dstModTime))

	decision, err := r.confirm.Decide(msg, def)
	if err != nil {
		return "", fmt.Errorf("conflict resolution failed: %w", err)
	}
	return decision, nil
}

func formatModTime(t time.Time) string {
	if t.IsZero() {
		return "unknown mtime"
	}
	return t.Format("2006-01-02 15:04:05")
}
