package browse

import (
	"sort"

	"github.com/siftinv/sift/types"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort columns of the tree view
const (
	// XXX Do not forget to update SortColumns() when you change this list
	SortByName	=	iota
	SortBySize
	SortByMTime
	SortByDupes
)

func SortColumns() []string {
	return []string {
		"name",
		"size",
		"modified",
		"dupes",
	}
}

//
// RowBuilder - flattens the cached per-host listings into ordered display rows
//
type RowBuilder struct {
	cache		*PathCache
	hosts		[]string				// selected hosts in merge order
	expanded	func(path string) bool

	sortCol		int
	sortDesc	bool

	coll		*collate.Collator
}

func NewRowBuilder(cache *PathCache, hosts []string, expanded func(string) bool) *RowBuilder {
	return &RowBuilder{
		cache:		cache,
		hosts:		hosts,
		expanded:	expanded,
		coll:		collate.New(language.Und, collate.Loose),
	}
}

func (rb *RowBuilder) SetHosts(hosts []string) {
	rb.hosts = hosts
}

func (rb *RowBuilder) SetSort(col int, desc bool) {
	rb.sortCol = col
	rb.sortDesc = desc
}

// One pending directory of the flattening walk
type buildFrame struct {
	entries			[]*types.AggregateEntry
	next			int

	parent			string
	parentDisplay	string
	depth			int
}

// BuildRows produces the flat pre-order row sequence of the tree rooted at
// root: each expanded directory row is immediately followed by the rows of
// its children at depth+1. The walk keeps an explicit frame stack, so the
// depth of the browsed tree never translates into call-stack depth.
func (rb *RowBuilder) BuildRows(root, rootDisplay string) []types.Row {
	rows := []types.Row{}

	stack := []buildFrame{{
		entries:		rb.mergedSorted(root),
		parent:			root,
		parentDisplay:	rootDisplay,
		depth:			0,
	}}

	for len(stack) != 0 {
		frame := &stack[len(stack)-1]
		if frame.next >= len(frame.entries) {
			// This directory is done
			stack = stack[:len(stack)-1]
			continue
		}

		ae := frame.entries[frame.next]
		frame.next++

		entryPath := types.JoinPath(frame.parent, ae.Segment)
		entryDisplay := types.JoinPath(frame.parentDisplay, ae.DisplaySegment())

		rows = append(rows, types.Row{
			Entry:			*ae,
			Parent:			frame.parent,
			Path:			entryPath,
			PathDisplay:	entryDisplay,
			Depth:			frame.depth,
		})

		// Descend into expanded directories
		if ae.IsDir() && rb.expanded(entryPath) {
			stack = append(stack, buildFrame{
				entries:		rb.mergedSorted(entryPath),
				parent:			entryPath,
				parentDisplay:	entryDisplay,
				depth:			frame.depth + 1,
			})
		}
	}

	return rows
}

// mergedSorted returns the merged children of one directory, directories
// first, each group ordered by the active sort column
func (rb *RowBuilder) mergedSorted(path string) []*types.AggregateEntry {
	listings := map[string]types.ChildListing{}
	for _, host := range rb.hosts {
		if rb.cache.Has(host, path) {
			listings[host] = rb.cache.Get(host, path)
		}
	}

	dirs := rb.sorted(MergeEntries(rb.hosts, listings, types.EntryDir))
	files := rb.sorted(MergeEntries(rb.hosts, listings, types.EntryFile))

	// Directories always precede files regardless of sort column
	return append(dirs, files...)
}

func (rb *RowBuilder) sorted(merged map[string]*types.AggregateEntry) []*types.AggregateEntry {
	entries := make([]*types.AggregateEntry, 0, len(merged))
	for _, ae := range merged {
		entries = append(entries, ae)
	}

	sort.Slice(entries, func(i, j int) bool {
		if rb.sortDesc {
			return rb.less(entries[j], entries[i])
		}
		return rb.less(entries[i], entries[j])
	})

	return entries
}

func (rb *RowBuilder) less(a, b *types.AggregateEntry) bool {
	switch rb.sortCol {
		case SortBySize:
			if av, bv := sortBytes(a), sortBytes(b); av != bv {
				return av < bv
			}
		case SortByMTime:
			if a.MTime != b.MTime {
				return a.MTime < b.MTime
			}
		case SortByDupes:
			if av, bv := sortDupes(a), sortDupes(b); av != bv {
				return av < bv
			}
	}

	// Name order, also the tie-break of the numeric columns. Locale-aware
	// with the raw segment as the final tie-break to stay deterministic.
	if cmp := rb.coll.CompareString(a.Segment, b.Segment); cmp != 0 {
		return cmp < 0
	}

	return a.Segment < b.Segment
}

// Size of an entry for sorting, aggregate bytes for directories
func sortBytes(ae *types.AggregateEntry) int64 {
	if ae.IsDir() {
		return ae.TotalBytes
	}
	return ae.SizeBytes
}

// Duplicate weight of an entry for sorting
func sortDupes(ae *types.AggregateEntry) int64 {
	if ae.IsDir() {
		return ExtraCopies(ae)
	}
	return ae.DupCount
}
