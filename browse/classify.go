package browse

import (
	"github.com/siftinv/sift/common/tools"
	"github.com/siftinv/sift/types"
)

// IsDuplicateFile reports whether a merged file entry counts as a duplicate:
// either some contributing host sees same-host copies (dup_count > 0), or
// the content hash is held by more than one of the selected hosts. The
// other_hosts field alone never marks an entry, it is cross-referenced
// against the selected set first.
func IsDuplicateFile(ae *types.AggregateEntry, selected tools.Set[string]) bool {
	if ae.IsDir() {
		return false
	}

	// Same-host duplication
	if ae.DupCount > 0 {
		return true
	}

	if ae.Hash == "" {
		// Not hashed yet, nothing to compare
		return false
	}

	// Cross-host duplication - count selected hosts holding this hash
	holders := tools.NewSet(ae.Hosts...)
	for _, h := range ae.OtherHostsList() {
		if selected.Includes(h) {
			holders.Add(h)
		}
	}

	return len(holders) > 1
}

// IsHardLinked reports whether a file entry is an extra directory entry of a
// hard-linked file. Independent of duplicate status, such files are excluded
// from extra-copies accounting on the server side.
func IsHardLinked(ae *types.AggregateEntry) bool {
	return !ae.IsDir() && ae.HardLinked
}

// ExtraCopies returns the number of files under a directory entry that could
// be removed while still keeping one copy of each distinct content hash.
// Always zero for files.
func ExtraCopies(ae *types.AggregateEntry) int64 {
	if !ae.IsDir() {
		return 0
	}

	if extra := ae.DupCount - ae.DupHashCount; extra > 0 {
		return extra
	}

	return 0
}
