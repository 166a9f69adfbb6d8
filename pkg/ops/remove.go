package ops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvaneijk/tidycat/pkg/logging"
	"github.com/mvaneijk/tidycat/pkg/models"
)

// RemoveEmpty deletes every zero-length file, one confirmation per file in
// interactive mode. Deletion failures are recorded and the pass continues.
func RemoveEmpty(env *Env, records []models.FileRecord) (models.Statistics, []models.RunError, error) {
	var res result
	for _, rec := range records {
		if rec.Size != 0 {
			continue
		}
		fatal, err := deleteFile(env, &res, models.OpEmpty, rec, "empty file")
		if fatal {
			return res.stats, res.errors, err
		}
	}
	return res.stats, res.errors, nil
}

// RemoveTemporary deletes files whose basename matches one of the
// configured temporary-file patterns.
func RemoveTemporary(env *Env, records []models.FileRecord) (models.Statistics, []models.RunError, error) {
	var res result
	for _, rec := range records {
		pattern, ok := matchTemporary(env.Config.Temporary.Patterns, filepath.Base(rec.Path))
		if !ok {
			continue
		}
		fatal, err := deleteFile(env, &res, models.OpTemporary, rec, "matches "+pattern)
		if fatal {
			return res.stats, res.errors, err
		}
	}
	return res.stats, res.errors, nil
}

// RemoveSameNames prunes files whose basename was already seen earlier in
// the combined walk order: the first occurrence is kept, later ones are
// deleted regardless of content.
func RemoveSameNames(env *Env, records []models.FileRecord) (models.Statistics, []models.RunError, error) {
	var res result
	first := make(map[string]string)
	for _, rec := range records {
		name := filepath.Base(rec.Path)
		kept, seen := first[name]
		if !seen {
			first[name] = rec.Path
			continue
		}
		fatal, err := deleteFile(env, &res, models.OpSameNames, rec, "same name as "+kept)
		if fatal {
			return res.stats, res.errors, err
		}
	}
	return res.stats, res.errors, nil
}

// deleteFile confirms and removes one file. The bool result marks fatal
// prompt failures.
func deleteFile(env *Env, res *result, op models.Operation, rec models.FileRecord, reason string) (bool, error) {
	msg := fmt.Sprintf("delete %s (%s)?", rec.Path, reason)
	ok, err := env.Confirm.Confirm(msg, true, false)
	if err != nil {
		return true, fmt.Errorf("%s confirmation failed: %w", op, err)
	}
	if !ok {
		env.Reporter.Action(models.VerbSkipped, rec.Path, reason)
		res.stats.FilesSkipped++
		return false, nil
	}

	if err := os.Remove(rec.Path); err != nil {
		env.Reporter.Diagnostic(rec.Path, err)
		env.Logger.Error("delete failed", err, logging.Fields{"path": rec.Path, "op": string(op)})
		res.fail(op, rec.Path, err)
		return false, nil
	}

	env.Reporter.Action(models.VerbDeleted, rec.Path, reason)
	res.stats.FilesDeleted++
	res.stats.BytesFreed += rec.Size
	return false, nil
}

func matchTemporary(patterns []string, name string) (string, bool) {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return p, true
		}
	}
	return "", false
}
