/*
Package browse implements the client-side aggregation engine: it turns
per-host flat directory listings fetched from the inventory server into a
single duplicate-aware tree with filtering and search overlays.
*/
package browse

import (
	"sync"

	"github.com/siftinv/sift/types"
)

//
// PathCache - last fetched listing per (host, directory) pair
//
// The cache is the single source of truth for "have we already fetched this".
// Entries are never updated in place, the only invalidation is a full clear.
// A fetch failure is stored as an empty listing, indistinguishable from an
// empty directory.
//
type PathCache struct {
	mtx		sync.Mutex
	m		map[types.ListingKey]types.ChildListing
	version	uint64
}

func NewPathCache() *PathCache {
	return &PathCache{m: map[types.ListingKey]types.ChildListing{}}
}

func (pc *PathCache) Has(host, path string) bool {
	pc.mtx.Lock()
	defer pc.mtx.Unlock()

	_, ok := pc.m[types.ListingKey{Host: host, Path: path}]
	return ok
}

func (pc *PathCache) Get(host, path string) types.ChildListing {
	pc.mtx.Lock()
	defer pc.mtx.Unlock()

	return pc.m[types.ListingKey{Host: host, Path: path}]
}

func (pc *PathCache) Set(host, path string, listing types.ChildListing) {
	pc.mtx.Lock()
	defer pc.mtx.Unlock()

	pc.m[types.ListingKey{Host: host, Path: path}] = listing
	pc.version++
}

func (pc *PathCache) Clear() {
	pc.mtx.Lock()
	defer pc.mtx.Unlock()

	pc.m = map[types.ListingKey]types.ChildListing{}
	pc.version++
}

// Version returns a counter incremented by every mutation. Dependent
// computations compare it to decide whether cached derivations are stale.
func (pc *PathCache) Version() uint64 {
	pc.mtx.Lock()
	defer pc.mtx.Unlock()

	return pc.version
}

func (pc *PathCache) Len() int {
	pc.mtx.Lock()
	defer pc.mtx.Unlock()

	return len(pc.m)
}
