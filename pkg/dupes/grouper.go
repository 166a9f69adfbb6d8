// Package dupes implements content-based duplicate detection: a two-phase
// grouper and the engine that prunes each duplicate set down to one
// retained file.
package dupes

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/cheggaaa/pb/v3"

	"github.com/mvaneijk/tidycat/pkg/models"
	"github.com/mvaneijk/tidycat/pkg/walker"
)

// Grouper partitions a file set into duplicate sets. Files are grouped by
// exact byte size first; only sizes with two or more members are hashed,
// so a file with a unique size never costs a read. Hash equality is
// treated as content equality (64-bit xxHash), a documented risk accepted
// instead of a full byte compare.
type Grouper struct {
	bufferSize   int
	showProgress bool
	diag         walker.DiagFunc
}

// NewGrouper creates a grouper. When showProgress is set, a progress bar
// over the bytes hashed is rendered on stdout.
func NewGrouper(bufferSize int, showProgress bool, diag walker.DiagFunc) *Grouper {
	if bufferSize < 4096 {
		bufferSize = 65536
	}
	if diag == nil {
		diag = func(string, error) {}
	}
	return &Grouper{
		bufferSize:   bufferSize,
		showProgress: showProgress,
		diag:         diag,
	}
}

// Group returns the duplicate sets of the combined input, each with two or
// more members of equal size and equal hash. Detection is tree-agnostic: a
// file in one catalog duplicating one in another is still a duplicate.
// Files that cannot be read are skipped with a diagnostic and do not
// prevent grouping of the files that hashed successfully.
func (g *Grouper) Group(records []models.FileRecord) []models.DuplicateSet {
	// Phase 1: partition by size, discard singletons before any I/O.
	bySize := make(map[int64][]models.FileRecord)
	for _, r := range records {
		bySize[r.Size] = append(bySize[r.Size], r)
	}

	sizes := make([]int64, 0, len(bySize))
	var pending int64
	for size, group := range bySize {
		if len(group) < 2 {
			continue
		}
		sizes = append(sizes, size)
		pending += size * int64(len(group))
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	var bar *pb.ProgressBar
	if g.showProgress && pending > 0 {
		bar = pb.Full.Start64(pending)
		bar.Set(pb.Bytes, true)
		defer bar.Finish()
	}

	// Phase 2: hash the surviving partitions, then partition by hash and
	// discard singletons again.
	var sets []models.DuplicateSet
	for _, size := range sizes {
		byHash := make(map[uint64][]models.FileRecord)
		var order []uint64

		for _, r := range bySize[size] {
			sum, err := g.hashFile(r.Path, bar)
			if err != nil {
				g.diag(r.Path, err)
				continue
			}
			if _, seen := byHash[sum]; !seen {
				order = append(order, sum)
			}
			byHash[sum] = append(byHash[sum], r)
		}

		for _, sum := range order {
			group := byHash[sum]
			if len(group) < 2 {
				continue
			}
			sets = append(sets, models.DuplicateSet{
				Hash:  sum,
				Size:  size,
				Files: group,
			})
		}
	}

	return sets
}

func (g *Grouper) hashFile(path string, bar *pb.ProgressBar) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if bar != nil {
		reader = bar.NewProxyReader(file)
	}

	digest := xxhash.New()
	buf := make([]byte, g.bufferSize)
	if _, err := io.CopyBuffer(digest, reader, buf); err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	return digest.Sum64(), nil
}
