package types

//
// Aggregate entry - the merge of a single path segment across selected hosts
//
type AggregateEntry struct {
	Segment			string
	SegmentDisplay	string
	Type			string

	// Counters are sums over all contributing hosts
	FileCount		int64
	TotalBytes		int64
	DupCount		int64
	DupHashCount	int64

	// Hosts that reported this segment, in merge order
	Hosts			[]string

	// Leaf fields take the first non-empty value in host merge order
	Filename		string
	SizeBytes		int64
	Hash			string
	MTime			int64
	Category		string
	PathDisplay		string
	OtherHosts		string
	HardLinked		bool
}

func (ae *AggregateEntry) IsDir() bool {
	return ae.Type == EntryDir
}

func (ae *AggregateEntry) OtherHostsList() []string {
	return SplitHostsList(ae.OtherHosts)
}

// DisplaySegment returns the original-case segment if a display override
// was reported, the plain segment otherwise
func (ae *AggregateEntry) DisplaySegment() string {
	if ae.SegmentDisplay != "" {
		return ae.SegmentDisplay
	}
	return ae.Segment
}
