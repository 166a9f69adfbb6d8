package models

import (
	"time"
)

// Operation identifies one of the cleanup operations a run may perform
type Operation string

const (
	// OpDuplicates removes duplicate files by content
	OpDuplicates Operation = "duplicates"
	// OpEmpty removes zero-length files
	OpEmpty Operation = "empty"
	// OpTemporary removes files matching the temporary-file patterns
	OpTemporary Operation = "temporary"
	// OpSameNames removes files sharing a basename with an earlier file
	OpSameNames Operation = "same-names"
	// OpAccess normalizes permission bits
	OpAccess Operation = "access"
	// OpTricky renames files containing configured tricky characters
	OpTricky Operation = "tricky"
	// OpMove merges source catalogs into the destination, removing sources
	OpMove Operation = "move"
	// OpCopy merges source catalogs into the destination non-destructively
	OpCopy Operation = "copy"
	// OpRename prompts for a new name for every file
	OpRename Operation = "rename"
)

// ExecutionOrder is the fixed order operations run in, regardless of the
// order their flags appear on the command line.
var ExecutionOrder = []Operation{
	OpDuplicates,
	OpEmpty,
	OpTemporary,
	OpSameNames,
	OpAccess,
	OpTricky,
	OpMove,
	OpCopy,
	OpRename,
}

// CleanRun describes one invocation of the tool. It is constructed once at
// startup and passed into every engine; engines never read ambient process
// state.
type CleanRun struct {
	ID          string
	Catalogs    []string
	Destination string

	// Automatic selects non-interactive behavior: every decision point
	// uses its computed default instead of prompting.
	Automatic bool

	Operations []Operation
	CreatedAt  time.Time
}

// Requested reports whether the run includes the given operation.
func (r *CleanRun) Requested(op Operation) bool {
	for _, o := range r.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// Validate checks if the run configuration is valid
func (r *CleanRun) Validate() error {
	if len(r.Catalogs) == 0 {
		return &ValidationError{Field: "Catalogs", Message: "at least one catalog is required"}
	}
	if len(r.Operations) == 0 {
		return &ValidationError{Field: "Operations", Message: "at least one operation must be selected"}
	}
	if (r.Requested(OpCopy) || r.Requested(OpMove)) && r.Destination == "" {
		return &ValidationError{Field: "Destination", Message: "destination catalog is required for copy and move"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
