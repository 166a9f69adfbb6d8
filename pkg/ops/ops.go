// Package ops implements the single-pass cleanup operations that share
// the walker, prompt, and reporting infrastructure with the duplicate and
// transfer engines: empty-file removal, temporary-file removal,
// same-basename pruning, permission normalization, tricky-character
// renaming, and interactive renaming.
package ops

import (
	"time"

	"github.com/mvaneijk/tidycat/pkg/config"
	"github.com/mvaneijk/tidycat/pkg/logging"
	"github.com/mvaneijk/tidycat/pkg/models"
	"github.com/mvaneijk/tidycat/pkg/output"
	"github.com/mvaneijk/tidycat/pkg/prompt"
)

// Env bundles the collaborators every operation needs. It is built once at
// startup and passed in explicitly.
type Env struct {
	Config   *config.Config
	Confirm  prompt.Confirmer
	Reporter output.Reporter
	Logger   logging.Logger
}

// result accumulates the outcome of one pass.
type result struct {
	stats  models.Statistics
	errors []models.RunError
}

func (r *result) fail(op models.Operation, path string, err error) {
	r.errors = append(r.errors, models.RunError{
		Path:      path,
		Operation: op,
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
	r.stats.FilesErrored++
}
