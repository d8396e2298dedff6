package browse

import (
	"github.com/siftinv/sift/common/tools"
	"github.com/siftinv/sift/types"
)

//
// Filter - the three filter families applied to tree and search rows
//
type Filter struct {
	Categories	tools.Set[string]	// empty - category filtering off
	MinDupSize	int64				// 0 - size threshold off
	DupesOnly	bool
}

// passBasic applies the category and minimum-duplicate-size families to one
// row. Directories always pass: category filtering never hides a directory,
// and the size threshold concerns files only.
func (f *Filter) passBasic(r *types.Row, selected tools.Set[string]) bool {
	if r.IsDir() {
		return true
	}

	if !f.Categories.Empty() && !f.Categories.Includes(r.Entry.Category) {
		return false
	}

	// Only duplicates below the threshold are removed,
	// a non-duplicate file always passes
	if f.MinDupSize > 0 &&
		r.Entry.SizeBytes < f.MinDupSize &&
		IsDuplicateFile(&r.Entry, selected) {
		return false
	}

	return true
}

// Apply filters a flat pre-order tree-row sequence. With duplicate-only mode
// off this is a plain per-row pass. With it on, three passes run:
//
//  1. strict - keep directories with extra copies and files that are
//     duplicates;
//  2. lenient - a duplicate pair can be split across sibling subdirectories,
//     so neither child shows extra copies although the parent does; when an
//     expanded duplicate-bearing directory ends up with zero strict children,
//     its children are re-admitted so the split stays navigable;
//  3. ancestors - every ancestor directory of a kept row is kept too, the
//     path from the root to any surviving row remains visible.
func (f *Filter) Apply(rows []types.Row, selected tools.Set[string], expanded func(string) bool) []types.Row {
	if !f.DupesOnly {
		kept := make([]types.Row, 0, len(rows))
		for i := range rows {
			if f.passBasic(&rows[i], selected) {
				kept = append(kept, rows[i])
			}
		}
		return kept
	}

	// Row index of every directory path, for ancestor walks
	dirIdx := make(map[string]int, len(rows))
	// Direct children of every directory row
	children := map[string][]int{}

	for i := range rows {
		if rows[i].IsDir() {
			dirIdx[rows[i].Path] = i
		}
		children[rows[i].Parent] = append(children[rows[i].Parent], i)
	}

	// Strict pass
	strict := make([]bool, len(rows))
	for i := range rows {
		if !f.passBasic(&rows[i], selected) {
			continue
		}
		if rows[i].IsDir() {
			strict[i] = ExtraCopies(&rows[i].Entry) > 0
		} else {
			strict[i] = IsDuplicateFile(&rows[i].Entry, selected)
		}
	}

	keep := make([]bool, len(rows))
	copy(keep, strict)

	// Lenient pass
	for i := range rows {
		if !rows[i].IsDir() || ExtraCopies(&rows[i].Entry) == 0 || !expanded(rows[i].Path) {
			continue
		}

		kids := children[rows[i].Path]

		anyStrict := false
		for _, k := range kids {
			if strict[k] {
				anyStrict = true
				break
			}
		}
		if anyStrict {
			// The split is already visible
			continue
		}

		for _, k := range kids {
			if f.passBasic(&rows[k], selected) {
				keep[k] = true
			}
		}
	}

	// Ancestor pass
	for i := range rows {
		if !keep[i] {
			continue
		}

		for p := rows[i].Parent; ; {
			idx, ok := dirIdx[p]
			if !ok || keep[idx] {
				break
			}
			keep[idx] = true
			p = rows[idx].Parent
		}
	}

	kept := make([]types.Row, 0, len(rows))
	for i := range rows {
		if keep[i] {
			kept = append(kept, rows[i])
		}
	}

	return kept
}

// Overrides of the search-row filter pass
type SearchFilterOpts struct {
	AllDuplicates	bool	// subtree overlay - every row is a duplicate by construction
	ForcePath		string	// pinned overlay - the originating file is always kept
}

// ApplySearch filters flat search rows. Group headers survive as long as at
// least one member does, with the member count refreshed.
func (f *Filter) ApplySearch(rows []types.Row, selected tools.Set[string], opts SearchFilterOpts) []types.Row {
	kept := make([]types.Row, 0, len(rows))

	for i := 0; i < len(rows); i++ {
		if rows[i].GroupHeader {
			// Filter the member block of this header
			members := make([]types.Row, 0, rows[i].GroupCount)
			j := i + 1
			for ; j < len(rows) && !rows[j].GroupHeader; j++ {
				if f.passSearchRow(&rows[j], selected, opts) {
					members = append(members, rows[j])
				}
			}

			if len(members) != 0 {
				header := rows[i]
				header.GroupCount = len(members)
				kept = append(kept, header)
				kept = append(kept, members...)
			}

			i = j - 1
			continue
		}

		if f.passSearchRow(&rows[i], selected, opts) {
			kept = append(kept, rows[i])
		}
	}

	return kept
}

func (f *Filter) passSearchRow(r *types.Row, selected tools.Set[string], opts SearchFilterOpts) bool {
	// The pinned file itself is exempt from all filtering
	if opts.ForcePath != "" && r.Path == opts.ForcePath {
		return true
	}

	isDup := opts.AllDuplicates || IsDuplicateFile(&r.Entry, selected)

	if !f.Categories.Empty() && !r.IsDir() && !f.Categories.Includes(r.Entry.Category) {
		return false
	}
	if f.MinDupSize > 0 && isDup && !r.IsDir() && r.Entry.SizeBytes < f.MinDupSize {
		return false
	}
	if f.DupesOnly && !isDup {
		return false
	}

	return true
}
