package models

import (
	"time"
)

// FileAction is one reported action on one file. Every mutation and every
// skip produces exactly one action, so the sequence reconstructs what
// happened to each file during the run.
type FileAction struct {
	Verb      string    `json:"verb"`
	Path      string    `json:"path"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Action verbs used in run output
const (
	VerbCopied   = "copied"
	VerbMoved    = "moved"
	VerbReplaced = "replaced"
	VerbKept     = "kept"
	VerbSkipped  = "skipped"
	VerbDeleted  = "deleted"
	VerbRetained = "retained"
	VerbRenamed  = "renamed"
	VerbChmod    = "chmod"
)

// Statistics holds run metrics
type Statistics struct {
	FilesScanned  int `json:"files_scanned"`
	DuplicateSets int `json:"duplicate_sets"`

	FilesDeleted  int `json:"files_deleted"`
	FilesCopied   int `json:"files_copied"`
	FilesMoved    int `json:"files_moved"`
	FilesReplaced int `json:"files_replaced"`
	FilesKept     int `json:"files_kept"`
	FilesSkipped  int `json:"files_skipped"`
	FilesRenamed  int `json:"files_renamed"`
	FilesChmodded int `json:"files_chmodded"`
	FilesErrored  int `json:"files_errored"`

	BytesFreed       int64 `json:"bytes_freed"`
	BytesTransferred int64 `json:"bytes_transferred"`
}

// Add merges the counters of another Statistics into this one.
func (s *Statistics) Add(other Statistics) {
	s.FilesScanned += other.FilesScanned
	s.DuplicateSets += other.DuplicateSets
	s.FilesDeleted += other.FilesDeleted
	s.FilesCopied += other.FilesCopied
	s.FilesMoved += other.FilesMoved
	s.FilesReplaced += other.FilesReplaced
	s.FilesKept += other.FilesKept
	s.FilesSkipped += other.FilesSkipped
	s.FilesRenamed += other.FilesRenamed
	s.FilesChmodded += other.FilesChmodded
	s.FilesErrored += other.FilesErrored
	s.BytesFreed += other.BytesFreed
	s.BytesTransferred += other.BytesTransferred
}

// RunError records a recovered per-file failure. One bad file never aborts
// a batch operation; it is recorded here and the run continues.
type RunError struct {
	Path      string    `json:"path"`
	Operation Operation `json:"operation"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RunStatus represents the overall result of a run
type RunStatus string

const (
	// StatusSuccess indicates every file-level action succeeded
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates some per-file actions failed
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates the run aborted
	StatusFailed RunStatus = "failed"
)

// ExitCode returns the process exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	default:
		return 2
	}
}

// RunReport represents the results of one invocation
type RunReport struct {
	RunID       string        `json:"run_id"`
	Catalogs    []string      `json:"catalogs"`
	Destination string        `json:"destination,omitempty"`
	Operations  []Operation   `json:"operations"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Duration    time.Duration `json:"duration_ns"`
	Stats       Statistics    `json:"stats"`
	Actions     []FileAction  `json:"actions"`
	Errors      []RunError    `json:"errors,omitempty"`
	Status      RunStatus     `json:"status"`
}

// Finish stamps the end time and derives the overall status from the
// recorded errors.
func (r *RunReport) Finish() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	if len(r.Errors) > 0 {
		r.Status = StatusPartial
	} else {
		r.Status = StatusSuccess
	}
}
