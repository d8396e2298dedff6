package browse

import (
	"sort"

	"github.com/siftinv/sift/common/tools"
	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"
)

// Minimum query lengths of the text-search modes
const (
	MinNameQuery	=	2
	MinHashQuery	=	4
)

// Overlay modes, lowest precedence first
const (
	ModeTree	=	iota	// no overlay, the regular tree
	ModeHash
	ModeName
	ModePinned
	ModeSubtree
)

//
// Overlay - flat search results layered over the tree view
//
// Several modes can hold results at the same time, e.g. a filename query is
// still set while the user pins one file from it. The active mode is decided
// by fixed precedence, clearing the higher mode reveals the lower one again.
//
type Overlay struct {
	nameQuery	string
	nameRows	[]types.Row

	hashQuery	string
	hashRows	[]types.Row

	pinnedPath	string
	pinnedRows	[]types.Row

	subtreeRoot	string
	subtreeRows	[]types.Row
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

// Mode returns the active overlay mode
func (ov *Overlay) Mode() int {
	switch {
		case ov.subtreeRoot != "":
			return ModeSubtree
		case ov.pinnedPath != "":
			return ModePinned
		case len(ov.nameQuery) >= MinNameQuery:
			return ModeName
		case len(ov.hashQuery) >= MinHashQuery:
			return ModeHash
		default:
			return ModeTree
	}
}

// Rows returns the result rows of the active mode, nil in tree mode
func (ov *Overlay) Rows() []types.Row {
	switch ov.Mode() {
		case ModeSubtree:
			return ov.subtreeRows
		case ModePinned:
			return ov.pinnedRows
		case ModeName:
			return ov.nameRows
		case ModeHash:
			return ov.hashRows
		default:
			return nil
	}
}

func (ov *Overlay) SetNameResults(query string, rows []types.Row) {
	ov.nameQuery = query
	ov.nameRows = rows
}

func (ov *Overlay) ClearName() {
	ov.nameQuery = ""
	ov.nameRows = nil
}

func (ov *Overlay) SetHashResults(query string, rows []types.Row) {
	ov.hashQuery = query
	ov.hashRows = rows
}

func (ov *Overlay) ClearHash() {
	ov.hashQuery = ""
	ov.hashRows = nil
}

// SetPinned fixes the copies of one file in view, path is the inventory
// path of the originating file
func (ov *Overlay) SetPinned(path string, rows []types.Row) {
	ov.pinnedPath = path
	ov.pinnedRows = rows
}

func (ov *Overlay) PinnedPath() string {
	return ov.pinnedPath
}

func (ov *Overlay) ClearPinned() {
	ov.pinnedPath = ""
	ov.pinnedRows = nil
}

func (ov *Overlay) SetSubtree(root string, rows []types.Row) {
	ov.subtreeRoot = root
	ov.subtreeRows = rows
}

func (ov *Overlay) SubtreeRoot() string {
	return ov.subtreeRoot
}

func (ov *Overlay) ClearSubtree() {
	ov.subtreeRoot = ""
	ov.subtreeRows = nil
}

// Clear drops every overlay layer at once
func (ov *Overlay) Clear() {
	ov.ClearName()
	ov.ClearHash()
	ov.ClearPinned()
	ov.ClearSubtree()
}

// RowFromFileEntry converts one flat search result to the common row shape:
// depth 0, no tree relationship beyond the recorded parent path
func RowFromFileEntry(fe *api.FileEntry) types.Row {
	return types.Row{
		Entry:	types.AggregateEntry{
			Segment:		fe.Filename,
			Type:			types.EntryFile,
			FileCount:		1,
			TotalBytes:		fe.SizeBytes,
			Hosts:			[]string{fe.Host},
			Filename:		fe.Filename,
			SizeBytes:		fe.SizeBytes,
			Hash:			fe.Hash,
			MTime:			fe.MTime,
			Category:		fe.Category,
			PathDisplay:	fe.PathDisplay,
			OtherHosts:		fe.OtherHosts,
		},

		Parent:			fe.Dir(),
		Path:			fe.Path(),
		PathDisplay:	fe.PathDisplay,
	}
}

// RowsFromFileEntries converts a whole flat result set and marks duplicates
// within it: a row whose hash occurs on more than one result is given the
// matching same-host duplicate count, so the regular classifier recognizes
// it downstream.
func RowsFromFileEntries(entries []api.FileEntry, selected tools.Set[string]) []types.Row {
	// Hash occurrences within the result set
	occurrences := map[string]int64{}
	for i := range entries {
		if entries[i].Hash != "" {
			occurrences[entries[i].Hash]++
		}
	}

	rows := make([]types.Row, 0, len(entries))
	for i := range entries {
		row := RowFromFileEntry(&entries[i])
		if n := occurrences[row.Entry.Hash]; n > 1 {
			row.Entry.DupCount = n - 1
		}
		rows = append(rows, row)
	}

	return rows
}

// GroupSubtreeDupes converts subtree-duplicate results into a grouped row
// sequence: per content hash one header row followed by its member rows.
// Members are ordered by (hash, containing directory, filename, full path),
// so the grouping is stable regardless of arrival order.
func GroupSubtreeDupes(entries []api.FileEntry) []types.Row {
	sorted := make([]api.FileEntry, len(entries))
	copy(sorted, entries)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if a.Hash != b.Hash {
			return a.Hash < b.Hash
		}
		if ad, bd := a.Dir(), b.Dir(); ad != bd {
			return ad < bd
		}
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Path() < b.Path()
	})

	rows := []types.Row{}
	for i := 0; i < len(sorted); {
		// Find the member block of this hash
		j := i
		for ; j < len(sorted) && sorted[j].Hash == sorted[i].Hash; j++ {
		}

		rows = append(rows, types.Row{
			Entry:	types.AggregateEntry{
				Segment:	sorted[i].Filename,
				Type:		types.EntryFile,
				Filename:	sorted[i].Filename,
				SizeBytes:	sorted[i].SizeBytes,
				Hash:		sorted[i].Hash,
				Category:	sorted[i].Category,
			},
			GroupHeader:	true,
			GroupCount:		j - i,
		})

		for ; i < j; i++ {
			rows = append(rows, RowFromFileEntry(&sorted[i]))
		}
	}

	return rows
}
