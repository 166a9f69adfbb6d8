package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvaneijk/tidycat/pkg/logging"
	"github.com/mvaneijk/tidycat/pkg/models"
)

// NormalizeAccess sets the configured permission bits on every file whose
// current mode differs.
func NormalizeAccess(env *Env, records []models.FileRecord) (models.Statistics, []models.RunError, error) {
	var res result
	mode := os.FileMode(env.Config.Access.Mode)

	for _, rec := range records {
		info, err := os.Stat(rec.Path)
		if err != nil {
			env.Reporter.Diagnostic(rec.Path, err)
			res.fail(models.OpAccess, rec.Path, err)
			continue
		}
		if info.Mode().Perm() == mode {
			continue
		}

		msg := fmt.Sprintf("change mode of %s from %o to %o?", rec.Path, info.Mode().Perm(), mode)
		ok, err := env.Confirm.Confirm(msg, true, false)
		if err != nil {
			return res.stats, res.errors, fmt.Errorf("access confirmation failed: %w", err)
		}
		if !ok {
			env.Reporter.Action(models.VerbSkipped, rec.Path, "mode unchanged")
			res.stats.FilesSkipped++
			continue
		}

		if err := os.Chmod(rec.Path, mode); err != nil {
			env.Reporter.Diagnostic(rec.Path, err)
			res.fail(models.OpAccess, rec.Path, err)
			continue
		}
		env.Reporter.Action(models.VerbChmod, rec.Path, fmt.Sprintf("%o", mode))
		res.stats.FilesChmodded++
	}

	return res.stats, res.errors, nil
}

// RenameTricky renames files whose basename contains configured tricky
// characters, replacing each with the substitute character. A rename whose
// target already exists is skipped with a diagnostic rather than
// clobbering the neighbor.
func RenameTricky(env *Env, records []models.FileRecord) (models.Statistics, []models.RunError, error) {
	var res result
	sub := []rune(env.Config.Tricky.Substitute)[0]

	for _, rec := range records {
		name := filepath.Base(rec.Path)
		sanitized := strings.Map(func(r rune) rune {
			if strings.ContainsRune(env.Config.Tricky.Characters, r) {
				return sub
			}
			return r
		}, name)
		if sanitized == name {
			continue
		}

		target := filepath.Join(filepath.Dir(rec.Path), sanitized)

		msg := fmt.Sprintf("rename %s to %s?", rec.Path, target)
		ok, err := env.Confirm.Confirm(msg, true, false)
		if err != nil {
			return res.stats, res.errors, fmt.Errorf("tricky-rename confirmation failed: %w", err)
		}
		if !ok {
			env.Reporter.Action(models.VerbSkipped, rec.Path, "rename declined")
			res.stats.FilesSkipped++
			continue
		}

		if _, err := os.Lstat(target); err == nil {
			env.Reporter.Diagnostic(rec.Path, fmt.Errorf("rename target already exists: %s", target))
			res.stats.FilesSkipped++
			env.Reporter.Action(models.VerbSkipped, rec.Path, "target exists")
			continue
		}

		if err := os.Rename(rec.Path, target); err != nil {
			env.Reporter.Diagnostic(rec.Path, err)
			res.fail(models.OpTricky, rec.Path, err)
			continue
		}
		env.Reporter.Action(models.VerbRenamed, rec.Path, "to "+target)
		env.Logger.Info("renamed tricky filename", logging.Fields{"from": rec.Path, "to": target})
		res.stats.FilesRenamed++
	}

	return res.stats, res.errors, nil
}

// RenameInteractive prompts for a new basename for every file. An empty
// answer keeps the current name. In automatic mode the pass does nothing,
// since there is no computed default for a new name.
func RenameInteractive(env *Env, records []models.FileRecord) (models.Statistics, []models.RunError, error) {
	var res result

	for _, rec := range records {
		line, err := env.Confirm.ReadLine(fmt.Sprintf("new name for %s (empty keeps):", rec.Path))
		if err != nil {
			return res.stats, res.errors, fmt.Errorf("rename prompt failed: %w", err)
		}
		name := strings.TrimSpace(line)
		if name == "" || name == filepath.Base(rec.Path) {
			continue
		}
		if strings.ContainsRune(name, filepath.Separator) {
			env.Reporter.Diagnostic(rec.Path, fmt.Errorf("new name must not contain a path separator: %q", name))
			res.fail(models.OpRename, rec.Path, fmt.Errorf("invalid name %q", name))
			continue
		}

		target := filepath.Join(filepath.Dir(rec.Path), name)
		if _, err := os.Lstat(target); err == nil {
			env.Reporter.Diagnostic(rec.Path, fmt.Errorf("rename target already exists: %s", target))
			res.stats.FilesSkipped++
			env.Reporter.Action(models.VerbSkipped, rec.Path, "target exists")
			continue
		}

		if err := os.Rename(rec.Path, target); err != nil {
			env.Reporter.Diagnostic(rec.Path, err)
			res.fail(models.OpRename, rec.Path, err)
			continue
		}
		env.Reporter.Action(models.VerbRenamed, rec.Path, "to "+target)
		res.stats.FilesRenamed++
	}

	return res.stats, res.errors, nil
}
