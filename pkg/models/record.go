package models

import (
	"time"
)

// FileRecord describes a regular file discovered during a catalog walk.
// Records are built once per walk and are not updated afterwards; nothing
// outlives a single invocation of the tool.
type FileRecord struct {
	// Path is the absolute path on the filesystem
	Path string

	// RelativePath is the path relative to the owning catalog root
	RelativePath string

	// Size in bytes
	Size int64

	// ModTime is the last modification time. A zero value means the
	// timestamp could not be read.
	ModTime time.Time

	// Catalog is the root of the tree the file was discovered under
	Catalog string
}

// ConflictDecision is the outcome of resolving a destination collision
// during a transfer
type ConflictDecision string

const (
	// DecisionReplace overwrites the destination with the source file
	DecisionReplace ConflictDecision = "replace"
	// DecisionKeep leaves the destination untouched
	DecisionKeep ConflictDecision = "keep"
	// DecisionSkip leaves both files untouched; reported distinctly from keep
	DecisionSkip ConflictDecision = "skip"
)

// TransferMode selects the semantics of the transfer engine
type TransferMode string

const (
	// ModeCopy leaves the source catalog untouched
	ModeCopy TransferMode = "copy"
	// ModeMove removes each source file after a successful transfer
	ModeMove TransferMode = "move"
)
