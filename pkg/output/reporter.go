// Package output renders the line-oriented run output. Every file-level
// action and every skip is one line on stdout; diagnostics go to stderr.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mvaneijk/tidycat/pkg/models"
)

// Reporter receives every observable event of a run.
type Reporter interface {
	// Action reports one file-level action (copied, deleted, kept, ...)
	Action(verb, path, detail string)

	// Notice reports a run-level message, such as a self-merge skip
	Notice(format string, args ...interface{})

	// Diagnostic reports a recovered per-file failure
	Diagnostic(path string, err error)

	// Summary renders the final report
	Summary(report *models.RunReport)
}

// HumanReporter writes human-readable lines
type HumanReporter struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

// NewHumanReporter creates a human-readable reporter. With quiet set, only
// diagnostics are emitted.
func NewHumanReporter(out, errOut io.Writer, quiet bool) *HumanReporter {
	return &HumanReporter{out: out, errOut: errOut, quiet: quiet}
}

// Action reports one file-level action
func (r *HumanReporter) Action(verb, path, detail string) {
	if r.quiet {
		return
	}
	if detail != "" {
		fmt.Fprintf(r.out, "%-9s %s (%s)\n", verb, path, detail)
		return
	}
	fmt.Fprintf(r.out, "%-9s %s\n", verb, path)
}

// Notice reports a run-level message
func (r *HumanReporter) Notice(format string, args ...interface{}) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Diagnostic reports a recovered per-file failure to the error stream
func (r *HumanReporter) Diagnostic(path string, err error) {
	fmt.Fprintf(r.errOut, "tidycat: %s: %v\n", path, err)
}

// Summary renders the final report
func (r *HumanReporter) Summary(report *models.RunReport) {
	if r.quiet {
		return
	}

	fmt.Fprintf(r.out, "\n")
	fmt.Fprintf(r.out, "Run completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(r.out, "\n")
	fmt.Fprintf(r.out, "Summary:\n")
	fmt.Fprintf(r.out, "  Files scanned:    %d\n", report.Stats.FilesScanned)
	if report.Stats.DuplicateSets > 0 || hasOp(report, models.OpDuplicates) {
		fmt.Fprintf(r.out, "  Duplicate sets:   %d\n", report.Stats.DuplicateSets)
	}
	fmt.Fprintf(r.out, "  Files deleted:    %d\n", report.Stats.FilesDeleted)
	fmt.Fprintf(r.out, "  Files copied:     %d\n", report.Stats.FilesCopied)
	fmt.Fprintf(r.out, "  Files moved:      %d\n", report.Stats.FilesMoved)
	fmt.Fprintf(r.out, "  Files replaced:   %d\n", report.Stats.FilesReplaced)
	fmt.Fprintf(r.out, "  Files kept:       %d\n", report.Stats.FilesKept)
	fmt.Fprintf(r.out, "  Files skipped:    %d\n", report.Stats.FilesSkipped)
	fmt.Fprintf(r.out, "  Files renamed:    %d\n", report.Stats.FilesRenamed)
	fmt.Fprintf(r.out, "  Modes changed:    %d\n", report.Stats.FilesChmodded)
	fmt.Fprintf(r.out, "  Errors:           %d\n", report.Stats.FilesErrored)
	fmt.Fprintf(r.out, "  Space freed:      %s\n", humanize.IBytes(uint64(report.Stats.BytesFreed)))
	fmt.Fprintf(r.out, "  Data transferred: %s\n", humanize.IBytes(uint64(report.Stats.BytesTransferred)))
	fmt.Fprintf(r.out, "\n")
	fmt.Fprintf(r.out, "Status: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(r.errOut, "\nErrors:\n")
		for _, e := range report.Errors {
			fmt.Fprintf(r.errOut, "  %s: %s\n", e.Path, e.Message)
		}
	}
}

func hasOp(report *models.RunReport, op models.Operation) bool {
	for _, o := range report.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// JSONReporter collects actions and emits one report object at the end,
// for automation and scripting.
type JSONReporter struct {
	out     io.Writer
	errOut  io.Writer
	actions []models.FileAction
}

// NewJSONReporter creates a JSON reporter
func NewJSONReporter(out, errOut io.Writer) *JSONReporter {
	return &JSONReporter{out: out, errOut: errOut}
}

// Action records the action for the final report
func (r *JSONReporter) Action(verb, path, detail string) {
	r.actions = append(r.actions, models.FileAction{
		Verb:      verb,
		Path:      path,
		Detail:    detail,
		Timestamp: time.Now(),
	})
}

// Notice is dropped in JSON mode; notices are derivable from actions
func (r *JSONReporter) Notice(format string, args ...interface{}) {}

// Diagnostic reports a recovered per-file failure to the error stream
func (r *JSONReporter) Diagnostic(path string, err error) {
	fmt.Fprintf(r.errOut, "tidycat: %s: %v\n", path, err)
}

// Summary emits the full report as indented JSON
func (r *JSONReporter) Summary(report *models.RunReport) {
	report.Actions = r.actions

	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		fmt.Fprintf(r.errOut, "tidycat: failed to encode report: %v\n", err)
	}
}
