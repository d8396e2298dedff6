package browse

import (
	"github.com/siftinv/sift/types"
)

// MergeEntries combines the per-host listings of one directory into a set of
// aggregate entries keyed by path segment, constrained to entries of the
// given type. Counters are summed across hosts, scalar leaf fields take the
// first non-empty value in the supplied host order. A host absent from
// listings simply does not contribute.
func MergeEntries(hosts []string, listings map[string]types.ChildListing, entryType string) map[string]*types.AggregateEntry {
	merged := map[string]*types.AggregateEntry{}

	for _, host := range hosts {
		for _, re := range listings[host] {
			if re.Type != entryType {
				// Not this pass
				continue
			}

			ae, ok := merged[re.Segment]
			if !ok {
				ae = &types.AggregateEntry{
					Segment:	re.Segment,
					Type:		re.Type,
				}
				merged[re.Segment] = ae
			}

			// Counters accumulate by addition
			ae.FileCount += re.FileCount
			ae.TotalBytes += re.TotalBytes
			ae.DupCount += re.DupCount
			ae.DupHashCount += re.DupHashCount

			// Remember who reported this segment
			ae.Hosts = append(ae.Hosts, host)

			// Scalar fields - first non-empty wins
			if ae.SegmentDisplay == "" {
				ae.SegmentDisplay = re.SegmentDisplay
			}
			if ae.Filename == "" {
				ae.Filename = re.Filename
			}
			if ae.SizeBytes == 0 {
				ae.SizeBytes = re.SizeBytes
			}
			if ae.Hash == "" {
				ae.Hash = re.Hash
			}
			if ae.MTime == 0 {
				ae.MTime = re.MTime
			}
			if ae.Category == "" {
				ae.Category = re.Category
			}
			if ae.PathDisplay == "" {
				ae.PathDisplay = re.PathDisplay
			}
			if ae.OtherHosts == "" {
				ae.OtherHosts = re.OtherHosts
			}
			if !ae.HardLinked {
				ae.HardLinked = re.HardLinked
			}
		}
	}

	return merged
}
