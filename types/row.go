package types

//
// Row - one renderable unit of the flattened tree or of a search result set
//
type Row struct {
	Entry		AggregateEntry

	Parent		string	// directory containing this entry
	Path		string	// full inventory path of this entry
	PathDisplay	string	// full display path
	Depth		int		// nesting depth, 0 for roots and search results

	// Subtree-duplicate group headers only
	GroupHeader	bool
	GroupCount	int		// number of member rows in the group
}

func (r *Row) IsDir() bool {
	return r.Entry.IsDir()
}
