package ops

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvaneijk/tidycat/pkg/config"
	"github.com/mvaneijk/tidycat/pkg/logging"
	"github.com/mvaneijk/tidycat/pkg/models"
	"github.com/mvaneijk/tidycat/pkg/output"
	"github.com/mvaneijk/tidycat/pkg/prompt"
	"github.com/mvaneijk/tidycat/pkg/walker"
)

func autoEnv() *Env {
	return &Env{
		Config:   config.Default(),
		Confirm:  prompt.Auto{},
		Reporter: output.NewHumanReporter(io.Discard, io.Discard, false),
		Logger:   logging.NewNullLogger(),
	}
}

func buildTree(t *testing.T, files map[string]string) (string, []models.FileRecord) {
	t.Helper()

	dir, err := os.MkdirTemp("", "tidycat-ops-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	records, err := walker.New(nil).Walk(dir)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return dir, records
}

func TestRemoveEmpty(t *testing.T) {
	dir, records := buildTree(t, map[string]string{
		"full.txt":      "content",
		"hollow.txt":    "",
		"sub/empty.log": "",
	})

	stats, runErrs, err := RemoveEmpty(autoEnv(), records)
	if err != nil {
		t.Fatalf("RemoveEmpty() error = %v", err)
	}
	if len(runErrs) != 0 {
		t.Errorf("recorded %d errors, want 0", len(runErrs))
	}
	if stats.FilesDeleted != 2 {
		t.Errorf("FilesDeleted = %d, want 2", stats.FilesDeleted)
	}
	if _, err := os.Stat(filepath.Join(dir, "full.txt")); err != nil {
		t.Error("non-empty file must survive")
	}
	if _, err := os.Stat(filepath.Join(dir, "hollow.txt")); !os.IsNotExist(err) {
		t.Error("empty file should be deleted")
	}
}

func TestRemoveEmptyInteractiveDecline(t *testing.T) {
	dir, records := buildTree(t, map[string]string{"hollow.txt": ""})

	env := autoEnv()
	env.Confirm = prompt.NewTerminalWithStreams(strings.NewReader("\n"), io.Discard)

	stats, _, err := RemoveEmpty(env, records)
	if err != nil {
		t.Fatalf("RemoveEmpty() error = %v", err)
	}
	if stats.FilesDeleted != 0 || stats.FilesSkipped != 1 {
		t.Errorf("deleted %d skipped %d, want 0/1", stats.FilesDeleted, stats.FilesSkipped)
	}
	if _, err := os.Stat(filepath.Join(dir, "hollow.txt")); err != nil {
		t.Error("declined file must survive")
	}
}

func TestRemoveTemporary(t *testing.T) {
	dir, records := buildTree(t, map[string]string{
		"keep.txt":     "data",
		"scratch.tmp":  "data",
		"backup~":      "data",
		"sub/old.bak":  "data",
		"not-tmp.tmpx": "data",
	})

	stats, _, err := RemoveTemporary(autoEnv(), records)
	if err != nil {
		t.Fatalf("RemoveTemporary() error = %v", err)
	}
	if stats.FilesDeleted != 3 {
		t.Errorf("FilesDeleted = %d, want 3", stats.FilesDeleted)
	}
	for _, name := range []string{"keep.txt", "not-tmp.tmpx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s must survive: %v", name, err)
		}
	}
}

func TestRemoveSameNames(t *testing.T) {
	dir, records := buildTree(t, map[string]string{
		"report.txt":     "first",
		"sub/report.txt": "second",
		"sub/other.txt":  "unrelated",
	})

	stats, _, err := RemoveSameNames(autoEnv(), records)
	if err != nil {
		t.Fatalf("RemoveSameNames() error = %v", err)
	}
	if stats.FilesDeleted != 1 {
		t.Errorf("FilesDeleted = %d, want 1", stats.FilesDeleted)
	}
	// Walk order is sorted by path, so the top-level report.txt comes
	// first and survives.
	if _, err := os.Stat(filepath.Join(dir, "report.txt")); err != nil {
		t.Error("first-encountered file must survive")
	}
	if _, err := os.Stat(filepath.Join(dir, "sub", "report.txt")); !os.IsNotExist(err) {
		t.Error("later same-named file should be deleted")
	}
	if _, err := os.Stat(filepath.Join(dir, "sub", "other.txt")); err != nil {
		t.Error("uniquely named file must survive")
	}
}

func TestNormalizeAccess(t *testing.T) {
	dir, records := buildTree(t, map[string]string{"a.txt": "data", "b.txt": "data"})
	if err := os.Chmod(filepath.Join(dir, "a.txt"), 0o777); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	env := autoEnv()
	stats, _, err := NormalizeAccess(env, records)
	if err != nil {
		t.Fatalf("NormalizeAccess() error = %v", err)
	}
	// b.txt already carries the configured mode.
	if stats.FilesChmodded != 1 {
		t.Errorf("FilesChmodded = %d, want 1", stats.FilesChmodded)
	}

	info, err := os.Stat(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != os.FileMode(env.Config.Access.Mode) {
		t.Errorf("mode = %o, want %o", info.Mode().Perm(), env.Config.Access.Mode)
	}
}

func TestRenameTricky(t *testing.T) {
	t.Run("ReplacesConfiguredCharacters", func(t *testing.T) {
		dir, records := buildTree(t, map[string]string{
			"plain.txt":        "data",
			"with space.txt":   "data",
			"semi;colon's.txt": "data",
		})

		stats, _, err := RenameTricky(autoEnv(), records)
		if err != nil {
			t.Fatalf("RenameTricky() error = %v", err)
		}
		if stats.FilesRenamed != 2 {
			t.Errorf("FilesRenamed = %d, want 2", stats.FilesRenamed)
		}
		for _, name := range []string{"plain.txt", "with_space.txt", "semi_colon_s.txt"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("%s should exist: %v", name, err)
			}
		}
	})

	t.Run("ExistingTargetIsSkipped", func(t *testing.T) {
		dir, records := buildTree(t, map[string]string{
			"with space.txt": "tricky",
			"with_space.txt": "occupied",
		})

		stats, _, err := RenameTricky(autoEnv(), records)
		if err != nil {
			t.Fatalf("RenameTricky() error = %v", err)
		}
		if stats.FilesRenamed != 0 || stats.FilesSkipped != 1 {
			t.Errorf("renamed %d skipped %d, want 0/1", stats.FilesRenamed, stats.FilesSkipped)
		}

		data, err := os.ReadFile(filepath.Join(dir, "with_space.txt"))
		if err != nil || string(data) != "occupied" {
			t.Error("occupying file must not be clobbered")
		}
	})
}

func TestRenameInteractive(t *testing.T) {
	t.Run("RenamesFromOperatorInput", func(t *testing.T) {
		dir, records := buildTree(t, map[string]string{"old.txt": "data"})

		env := autoEnv()
		env.Confirm = prompt.NewTerminalWithStreams(strings.NewReader("fresh.txt\n"), io.Discard)

		stats, _, err := RenameInteractive(env, records)
		if err != nil {
			t.Fatalf("RenameInteractive() error = %v", err)
		}
		if stats.FilesRenamed != 1 {
			t.Errorf("FilesRenamed = %d, want 1", stats.FilesRenamed)
		}
		if _, err := os.Stat(filepath.Join(dir, "fresh.txt")); err != nil {
			t.Errorf("renamed file should exist: %v", err)
		}
	})

	t.Run("EmptyAnswerKeepsName", func(t *testing.T) {
		dir, records := buildTree(t, map[string]string{"old.txt": "data"})

		env := autoEnv()
		env.Confirm = prompt.NewTerminalWithStreams(strings.NewReader("\n"), io.Discard)

		stats, _, err := RenameInteractive(env, records)
		if err != nil {
			t.Fatalf("RenameInteractive() error = %v", err)
		}
		if stats.FilesRenamed != 0 {
			t.Errorf("FilesRenamed = %d, want 0", stats.FilesRenamed)
		}
		if _, err := os.Stat(filepath.Join(dir, "old.txt")); err != nil {
			t.Error("file should keep its name")
		}
	})

	t.Run("AutomaticModeIsNoop", func(t *testing.T) {
		dir, records := buildTree(t, map[string]string{"old.txt": "data"})

		stats, _, err := RenameInteractive(autoEnv(), records)
		if err != nil {
			t.Fatalf("RenameInteractive() error = %v", err)
		}
		if stats.FilesRenamed != 0 {
			t.Errorf("FilesRenamed = %d, want 0", stats.FilesRenamed)
		}
		if _, err := os.Stat(filepath.Join(dir, "old.txt")); err != nil {
			t.Error("automatic mode must not rename anything")
		}
	})

	t.Run("SeparatorInNameIsRejected", func(t *testing.T) {
		_, records := buildTree(t, map[string]string{"old.txt": "data"})

		env := autoEnv()
		env.Confirm = prompt.NewTerminalWithStreams(strings.NewReader("sub/old.txt\n"), io.Discard)

		stats, runErrs, err := RenameInteractive(env, records)
		if err != nil {
			t.Fatalf("RenameInteractive() error = %v", err)
		}
		if stats.FilesRenamed != 0 || len(runErrs) != 1 {
			t.Errorf("renamed %d errors %d, want 0/1", stats.FilesRenamed, len(runErrs))
		}
	})
}
