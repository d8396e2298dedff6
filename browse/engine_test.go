package browse

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"

	"github.com/stretchr/testify/require"
)

//
// Programmable fake of the inventory server
//
type fakeClient struct {
	mtx			sync.Mutex

	hosts		[]api.HostEntry
	initData	*api.InitData

	listings	map[string]types.ChildListing	// key - host:path
	failLs		map[string]bool					// key - host:path
	lsCalls		map[string]int
	lsDelay		time.Duration

	found		[]api.FileEntry
	findCalls	int

	dupDirs		map[string][]string				// key - host
	subtree		map[string][]api.FileEntry		// key - host
	dupHashes	map[string]string				// key - host:path
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		hosts: []api.HostEntry{ {Host: "alpha"}, {Host: "beta"} },
		listings:	map[string]types.ChildListing{},
		failLs:		map[string]bool{},
		lsCalls:	map[string]int{},
		dupDirs:	map[string][]string{},
		subtree:	map[string][]api.FileEntry{},
		dupHashes:	map[string]string{},
	}
}

func lsKey(host, path string) string {
	return types.ListingKey{Host: host, Path: path}.String()
}

func (fc *fakeClient) Ls(_ context.Context, host, path string, _ int64) (types.ChildListing, error) {
	if fc.lsDelay != 0 {
		time.Sleep(fc.lsDelay)
	}

	fc.mtx.Lock()
	defer fc.mtx.Unlock()

	key := lsKey(host, path)
	fc.lsCalls[key]++

	if fc.failLs[key] {
		return nil, fmt.Errorf("host %q is unreachable", host)
	}

	return fc.listings[key], nil
}

func (fc *fakeClient) Find(_ context.Context, _ *api.FindQuery) ([]api.FileEntry, error) {
	fc.mtx.Lock()
	defer fc.mtx.Unlock()

	fc.findCalls++
	return fc.found, nil
}

func (fc *fakeClient) DupHash(_ context.Context, host, path string, _ int64) (string, error) {
	return fc.dupHashes[lsKey(host, path)], nil
}

func (fc *fakeClient) DuplicatesInSubtree(_ context.Context, host, _ string, _ int64, _ int) ([]api.FileEntry, error) {
	return fc.subtree[host], nil
}

func (fc *fakeClient) DupAncestorDirs(_ context.Context, host, _ string, _ int64) ([]string, error) {
	return fc.dupDirs[host], nil
}

func (fc *fakeClient) Directories(_ context.Context, _ string, _ int) ([]api.DirSuggestion, error) {
	return nil, nil
}

func (fc *fakeClient) Hosts(_ context.Context) ([]api.HostEntry, error) {
	return fc.hosts, nil
}

func (fc *fakeClient) Init(_ context.Context, _ string, _ int64) (*api.InitData, error) {
	if fc.initData == nil {
		return nil, fmt.Errorf("endpoint not provided by this server")
	}
	return fc.initData, nil
}

func (fc *fakeClient) StatsOverview(_ context.Context, _ int64, _, _ []string) (*api.StatsOverview, error) {
	return &api.StatsOverview{}, nil
}

func (fc *fakeClient) StatsDuplicates(_ context.Context, _, _, _ int) ([]api.DuplicateSet, error) {
	return nil, nil
}

func (fc *fakeClient) ScanRuns(_ context.Context, _ string, _ int) ([]api.ScanRun, error) {
	return nil, nil
}

func (fc *fakeClient) calls(host, path string) int {
	fc.mtx.Lock()
	defer fc.mtx.Unlock()

	return fc.lsCalls[lsKey(host, path)]
}

//
// Tests
//

func TestEngineInitCombined(t *testing.T) {
	fc := newFakeClient()
	fc.initData = &api.InitData{
		Hosts:		fc.hosts,
		ClientHost:	"alpha",
		RootLs:	map[string]types.ChildListing{
			"alpha":	{{ Segment: "pics", Type: types.EntryDir, FileCount: 1 }},
			"beta":		{{ Segment: "pics", Type: types.EntryDir, FileCount: 2 }},
		},
	}

	e := NewEngine(fc, nil)
	require.NoError(t, e.Init(context.Background()))

	require.Equal(t, []string{"alpha", "beta"}, e.SelectedHosts())
	require.Equal(t, "alpha", e.ClientHost())

	// The combined call already delivered the root listings
	require.Equal(t, 0, fc.calls("alpha", "/"))
	require.True(t, e.cache.Has("alpha", "/") && e.cache.Has("beta", "/"))

	rows := e.Rows()
	require.Len(t, rows, 1)
	require.Equal(t, int64(3), rows[0].Entry.FileCount)
}

func TestEngineInitFallback(t *testing.T) {
	fc := newFakeClient()
	fc.listings[lsKey("alpha", "/")] = types.ChildListing{
		{ Segment: "docs", Type: types.EntryDir, FileCount: 1 },
	}

	e := NewEngine(fc, nil)
	require.NoError(t, e.Init(context.Background()))

	// Separate host-list call plus one root fetch per host
	require.Equal(t, []string{"alpha", "beta"}, e.SelectedHosts())
	require.Equal(t, 1, fc.calls("alpha", "/"))
	require.Equal(t, 1, fc.calls("beta", "/"))
}

func TestEngineInitKeepsCachedListings(t *testing.T) {
	fc := newFakeClient()
	fc.listings[lsKey("alpha", "/")] = types.ChildListing{
		{ Segment: "docs", Type: types.EntryDir, FileCount: 5 },
	}

	e := NewEngine(fc, nil)
	e.SelectHosts("alpha")
	require.NoError(t, e.EnsureDir(context.Background(), "/"))

	// A later combined startup call must not replace the fetched entry,
	// cache entries are only dropped by a full clear
	fc.initData = &api.InitData{
		Hosts:	fc.hosts,
		RootLs:	map[string]types.ChildListing{
			"alpha":	{{ Segment: "docs", Type: types.EntryDir, FileCount: 9 }},
			"beta":		{{ Segment: "music", Type: types.EntryDir, FileCount: 1 }},
		},
	}
	require.NoError(t, e.Init(context.Background()))

	require.Equal(t, int64(5), e.cache.Get("alpha", "/")[0].FileCount)
	require.Equal(t, int64(1), e.cache.Get("beta", "/")[0].FileCount)
}

func TestEngineHostSelection(t *testing.T) {
	fc := newFakeClient()
	fc.listings[lsKey("alpha", "/")] = types.ChildListing{
		{ Segment: "pics", Type: types.EntryDir, FileCount: 1 },
	}
	fc.listings[lsKey("beta", "/")] = types.ChildListing{
		{ Segment: "pics", Type: types.EntryDir, FileCount: 2 },
	}
	fc.listings[lsKey("alpha", "/pics")] = types.ChildListing{
		{ Segment: "cat.jpg", Type: types.EntryFile, FileCount: 1 },
	}
	fc.listings[lsKey("beta", "/pics")] = types.ChildListing{
		{ Segment: "dog.jpg", Type: types.EntryFile, FileCount: 1 },
	}

	e := NewEngine(fc, nil)
	e.SelectHosts("alpha")
	require.NoError(t, e.EnsureDir(context.Background(), "/"))
	require.NoError(t, e.ExpandDir(context.Background(), "/pics"))

	// Only the selected host was queried
	require.Equal(t, 0, fc.calls("beta", "/"))
	require.Equal(t, 0, fc.calls("beta", "/pics"))
	require.Len(t, e.Rows(), 2)

	// Broadening the selection backfills the open tree for the new host
	e.SelectHosts("alpha", "beta")
	require.NoError(t, e.EnsureExpanded(context.Background()))

	require.Equal(t, 1, fc.calls("beta", "/"))
	require.Equal(t, 1, fc.calls("beta", "/pics"))

	rows := e.Rows()
	require.Len(t, rows, 3)
	require.Equal(t, int64(3), rows[0].Entry.FileCount)

	// Narrowing back needs no refetch, cached listings are kept
	e.SelectHosts("beta")
	require.NoError(t, e.EnsureExpanded(context.Background()))
	require.Equal(t, 1, fc.calls("beta", "/"))

	rows = e.Rows()
	require.Equal(t, int64(2), rows[0].Entry.FileCount)
}

func TestEngineEnsureDir(t *testing.T) {
	fc := newFakeClient()
	fc.lsDelay = 20 * time.Millisecond
	fc.listings[lsKey("alpha", "/pics")] = types.ChildListing{
		{ Segment: "cat.jpg", Type: types.EntryFile, FileCount: 1 },
	}
	fc.failLs[lsKey("beta", "/pics")] = true

	e := NewEngine(fc, nil)
	e.SelectHosts("alpha", "beta")

	// Rapid repeated expansion must reach each host once
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			//nolint:errcheck
			e.EnsureDir(context.Background(), "/pics")
		}()
	}
	wg.Wait()

	require.Equal(t, 1, fc.calls("alpha", "/pics"), "duplicate in-flight fetches not collapsed")
	require.Equal(t, 1, fc.calls("beta", "/pics"))

	// The failed host is cached as an empty listing
	require.True(t, e.cache.Has("beta", "/pics"))
	require.Empty(t, e.cache.Get("beta", "/pics"))

	// A later call is served from the cache entirely
	require.NoError(t, e.EnsureDir(context.Background(), "/pics"))
	require.Equal(t, 1, fc.calls("alpha", "/pics"))
}

func TestEngineMinDupSizeInvalidation(t *testing.T) {
	fc := newFakeClient()
	fc.listings[lsKey("alpha", "/")] = types.ChildListing{
		{ Segment: "pics", Type: types.EntryDir, FileCount: 1 },
	}

	e := NewEngine(fc, nil)
	require.NoError(t, e.Init(context.Background()))
	require.NoError(t, e.ExpandDir(context.Background(), "/pics"))
	require.True(t, e.expand.IsExpanded("/pics"))

	before := e.cache.Version()

	// Cached duplicate counts are stale under a new threshold: everything
	// is dropped and the root refetched
	require.NoError(t, e.SetMinDupSize(context.Background(), 1024*1024))

	require.False(t, e.expand.IsExpanded("/pics"))
	require.False(t, e.cache.Has("alpha", "/pics"))
	require.True(t, e.cache.Has("alpha", "/"))
	require.Equal(t, 2, fc.calls("alpha", "/"))
	require.Greater(t, e.cache.Version(), before)

	// Setting the same threshold again is a no-op
	require.NoError(t, e.SetMinDupSize(context.Background(), 1024*1024))
	require.Equal(t, 2, fc.calls("alpha", "/"))
}

func TestEngineDupesOnly(t *testing.T) {
	fc := newFakeClient()
	fc.listings[lsKey("alpha", "/")] = types.ChildListing{
		{ Segment: "pics", Type: types.EntryDir, FileCount: 2, DupCount: 2, DupHashCount: 1 },
	}
	fc.listings[lsKey("alpha", "/pics")] = types.ChildListing{
		{ Segment: "twin.jpg", Type: types.EntryFile, FileCount: 1, DupCount: 1, Hash: "aaa" },
	}
	fc.dupDirs["alpha"] = []string{"/pics"}

	e := NewEngine(fc, nil)
	e.SelectHosts("alpha")
	require.NoError(t, e.EnsureDir(context.Background(), "/"))

	require.NoError(t, e.SetDupesOnly(context.Background(), true))

	// The reported ancestor directory is expanded as a derived layer and
	// its listing fetched, so the duplicate below it is visible at once
	require.True(t, e.expand.IsExpanded("/pics"))
	rows := e.Rows()
	require.Len(t, rows, 2)
	require.Equal(t, "/pics/twin.jpg", rows[1].Path)

	// Disabling the mode retracts the derived layer
	require.NoError(t, e.SetDupesOnly(context.Background(), false))
	require.False(t, e.expand.IsExpanded("/pics"))
}

func TestEngineSearchOverlays(t *testing.T) {
	fc := newFakeClient()
	fc.found = []api.FileEntry{
		{ Host: "alpha", PathDisplay: "/Pics/cat.jpg", Filename: "cat.jpg", SizeBytes: 100, Hash: "aaa" },
		{ Host: "beta", PathDisplay: "/Backup/cat.jpg", Filename: "cat.jpg", SizeBytes: 100, Hash: "aaa" },
	}

	e := NewEngine(fc, nil)
	e.SelectHosts("alpha", "beta")
	e.nameDeb = NewDebouncer(5 * time.Millisecond)

	// Too short - no query, overlay stays off
	e.QueueNameSearch(context.Background(), "c", nil)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, ModeTree, e.overlay.Mode())
	require.Equal(t, 0, fc.findCalls)

	// A settled query populates the name overlay
	done := make(chan struct{}, 1)
	e.QueueNameSearch(context.Background(), "cat", func() { done <- struct{}{} })
	<-done

	require.Equal(t, ModeName, e.overlay.Mode())
	rows := e.Rows()
	require.Len(t, rows, 2)
	// Both copies share a hash, so they are marked as duplicates in-set
	require.Positive(t, rows[0].Entry.DupCount)

	// Pinning takes precedence over the live name query
	e.PinCopies(context.Background(), "aaa", "/pics/cat.jpg")
	require.Equal(t, ModePinned, e.overlay.Mode())

	// Clearing the pin reveals the name results again
	e.mtx.Lock()
	e.overlay.ClearPinned()
	e.mtx.Unlock()
	require.Equal(t, ModeName, e.overlay.Mode())

	e.ClearOverlays()
	require.Equal(t, ModeTree, e.overlay.Mode())
}

func TestEngineSubtreeOverlay(t *testing.T) {
	fc := newFakeClient()
	fc.subtree["alpha"] = []api.FileEntry{
		{ Host: "alpha", PathDisplay: "/pics/a/cat.jpg", Filename: "cat.jpg", SizeBytes: 100, Hash: "aaa" },
		{ Host: "alpha", PathDisplay: "/pics/b/cat.jpg", Filename: "cat.jpg", SizeBytes: 100, Hash: "aaa" },
	}
	fc.subtree["beta"] = []api.FileEntry{
		{ Host: "beta", PathDisplay: "/pics/a/cat.jpg", Filename: "cat.jpg", SizeBytes: 100, Hash: "aaa" },
	}

	e := NewEngine(fc, nil)
	e.SelectHosts("alpha", "beta")

	require.NoError(t, e.ShowSubtreeDupes(context.Background(), "/pics"))
	require.Equal(t, ModeSubtree, e.overlay.Mode())

	rows := e.Rows()
	require.Len(t, rows, 4)
	require.True(t, rows[0].GroupHeader)
	require.Equal(t, 3, rows[0].GroupCount)

	// Deterministic member order regardless of arrival order
	require.Equal(t, "/pics/a/cat.jpg", rows[1].Path)
	require.Equal(t, "/pics/a/cat.jpg", rows[2].Path)
	require.Equal(t, "/pics/b/cat.jpg", rows[3].Path)
}
