package models

// DuplicateSet groups two or more files with identical size and identical
// content hash. Hash equality is treated as content equality; the tool does
// not byte-compare members, which is a documented and accepted risk.
type DuplicateSet struct {
	// Hash is the 64-bit content hash shared by every member
	Hash uint64

	// Size is the byte size shared by every member
	Size int64

	// Files holds the members in walk order
	Files []FileRecord
}

// Retained returns the index of the member to keep: the one with the
// oldest modification time. A member with a zero ModTime is treated as
// infinitely new and never preferred over a dated alternative. Ties keep
// the first-encountered member, so the selection is stable across runs on
// unchanged input.
func (s *DuplicateSet) Retained() int {
	retained := 0
	for i, f := range s.Files[1:] {
		cur := s.Files[retained]
		switch {
		case f.ModTime.IsZero():
			// never preferred
		case cur.ModTime.IsZero():
			retained = i + 1
		case f.ModTime.Before(cur.ModTime):
			retained = i + 1
		}
	}
	return retained
}

// Candidates returns the members that are not retained, in walk order.
func (s *DuplicateSet) Candidates() []FileRecord {
	retained := s.Retained()
	candidates := make([]FileRecord, 0, len(s.Files)-1)
	for i, f := range s.Files {
		if i != retained {
			candidates = append(candidates, f)
		}
	}
	return candidates
}
