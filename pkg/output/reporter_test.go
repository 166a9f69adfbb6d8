package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mvaneijk/tidycat/pkg/models"
)

func TestHumanReporterAction(t *testing.T) {
	t.Run("OneLinePerAction", func(t *testing.T) {
		var out, errOut bytes.Buffer
		r := NewHumanReporter(&out, &errOut, false)

		r.Action(models.VerbDeleted, "/data/b.txt", "duplicate of /data/a.txt")
		r.Action(models.VerbKept, "/x/c.txt", "")

		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		if len(lines) != 2 {
			t.Fatalf("got %d lines, want 2", len(lines))
		}
		if !strings.HasPrefix(lines[0], "deleted") || !strings.Contains(lines[0], "duplicate of") {
			t.Errorf("unexpected first line: %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "kept") {
			t.Errorf("unexpected second line: %q", lines[1])
		}
		if errOut.Len() != 0 {
			t.Error("actions should not touch the error stream")
		}
	})

	t.Run("QuietSuppressesActions", func(t *testing.T) {
		var out, errOut bytes.Buffer
		r := NewHumanReporter(&out, &errOut, true)

		r.Action(models.VerbCopied, "/x/a.txt", "")
		r.Notice("skipping %s", "/x")

		if out.Len() != 0 {
			t.Errorf("quiet reporter wrote %q", out.String())
		}
	})

	t.Run("DiagnosticGoesToErrorStream", func(t *testing.T) {
		var out, errOut bytes.Buffer
		r := NewHumanReporter(&out, &errOut, true)

		r.Diagnostic("/data/locked", errors.New("permission denied"))

		if !strings.Contains(errOut.String(), "permission denied") {
			t.Errorf("error stream = %q", errOut.String())
		}
		if out.Len() != 0 {
			t.Error("diagnostics should not touch stdout")
		}
	})
}

func TestHumanReporterSummary(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewHumanReporter(&out, &errOut, false)

	report := &models.RunReport{
		Operations: []models.Operation{models.OpDuplicates},
		Duration:   2 * time.Second,
		Stats: models.Statistics{
			FilesScanned:  10,
			DuplicateSets: 2,
			FilesDeleted:  3,
			BytesFreed:    2048,
		},
		Status: models.StatusSuccess,
		Errors: []models.RunError{
			{Path: "/data/x", Message: "permission denied"},
		},
	}

	r.Summary(report)

	text := out.String()
	if !strings.Contains(text, "Duplicate sets:   2") {
		t.Errorf("summary missing duplicate sets:\n%s", text)
	}
	if !strings.Contains(text, "2.0 KiB") {
		t.Errorf("summary should humanize byte counts:\n%s", text)
	}
	if !strings.Contains(text, "Status: success") {
		t.Errorf("summary missing status:\n%s", text)
	}
	if !strings.Contains(errOut.String(), "permission denied") {
		t.Error("per-file errors should be listed on the error stream")
	}
}

func TestJSONReporter(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewJSONReporter(&out, &errOut)

	r.Action(models.VerbReplaced, "/x/c.txt", "source newer")
	r.Action(models.VerbSkipped, "/x/d.txt", "")

	report := &models.RunReport{
		RunID:     "run-1",
		StartTime: time.Now(),
		Status:    models.StatusSuccess,
	}
	r.Summary(report)

	var decoded models.RunReport
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if decoded.RunID != "run-1" {
		t.Errorf("RunID = %s, want run-1", decoded.RunID)
	}
	if len(decoded.Actions) != 2 {
		t.Fatalf("Actions length = %d, want 2", len(decoded.Actions))
	}
	if decoded.Actions[0].Verb != models.VerbReplaced {
		t.Errorf("first action verb = %s, want replaced", decoded.Actions[0].Verb)
	}
}
