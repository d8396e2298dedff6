package browse

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/siftinv/sift/common/tools"
	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

//
// Engine - owner of all aggregation state
//
// The engine is the only writer of the path cache, the expansion sets and
// the search overlay. Fetches run concurrently per host, everything else is
// synchronous recomputation over cache state. Fetch failures never
// propagate, they are absorbed as empty data.
//
type Engine struct {
	client	api.Client
	log		*zap.Logger

	cache	*PathCache
	expand	*ExpansionState
	fetches	singleflight.Group

	mtx			sync.Mutex
	allHosts	[]api.HostEntry
	selected	[]string	// merge order
	clientHost	string

	root		string
	rootDisplay	string

	filter	Filter
	builder	*RowBuilder

	overlay	*Overlay
	nameDeb	*Debouncer
	hashDeb	*Debouncer
}

func NewEngine(client api.Client, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		client:			client,
		log:			log.Named("engine"),
		cache:			NewPathCache(),
		expand:			NewExpansionState(),
		root:			"/",
		rootDisplay:	"/",
		overlay:		NewOverlay(),
		nameDeb:		NewDebouncer(DefaultDebounce),
		hashDeb:		NewDebouncer(DefaultDebounce),
	}
	e.builder = NewRowBuilder(e.cache, nil, e.expand.IsExpanded)

	return e
}

//
// Startup and host selection
//

// Init loads the host list and the root listing of every host. The combined
// startup endpoint is preferred, servers without it are handled by falling
// back to the separate host-list call plus per-host root fetches.
func (e *Engine) Init(ctx context.Context) error {
	if data, err := e.client.Init(ctx, e.root, e.filter.MinDupSize); err == nil {
		e.mtx.Lock()
		e.allHosts = data.Hosts
		e.clientHost = data.ClientHost
		e.selected = hostNames(data.Hosts)
		e.builder.SetHosts(e.selected)
		e.mtx.Unlock()

		for host, listing := range data.RootLs {
			// An earlier fetch owns the entry, cached listings are never
			// replaced outside of a full clear
			if e.cache.Has(host, e.root) {
				continue
			}
			e.cache.Set(host, e.root, listing)
		}

		return nil
	} else {
		e.log.Debug("combined startup call failed, falling back to host list", zap.Error(err))
	}

	hosts, err := e.client.Hosts(ctx)
	if err != nil {
		return fmt.Errorf("cannot load host list: %w", err)
	}

	e.mtx.Lock()
	e.allHosts = hosts
	e.selected = hostNames(hosts)
	e.builder.SetHosts(e.selected)
	e.mtx.Unlock()

	return e.EnsureDir(ctx, e.root)
}

func hostNames(hosts []api.HostEntry) []string {
	names := make([]string, 0, len(hosts))
	for _, h := range hosts {
		names = append(names, h.Host)
	}

	return names
}

// Hosts returns every host known to the server
func (e *Engine) Hosts() []api.HostEntry {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.allHosts
}

// ClientHost returns the server's best guess of the calling machine's name,
// empty when unknown
func (e *Engine) ClientHost() string {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.clientHost
}

func (e *Engine) SelectedHosts() []string {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return append([]string{}, e.selected...)
}

// SelectHosts replaces the selected-host set. The given order becomes the
// merge order of aggregate entries. Cached listings of deselected hosts are
// kept, reselection needs no refetch.
func (e *Engine) SelectHosts(hosts ...string) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.selected = append([]string{}, hosts...)
	e.builder.SetHosts(e.selected)
}

// EnsureExpanded fetches the root listing and the listings of every expanded
// directory for the current selection. Called after the selection changes,
// a newly selected host may have nothing cached yet.
func (e *Engine) EnsureExpanded(ctx context.Context) error {
	e.mtx.Lock()
	paths := append([]string{e.root}, e.expand.Expanded()...)
	e.mtx.Unlock()

	for _, p := range paths {
		if err := e.EnsureDir(ctx, p); err != nil {
			return err
		}
	}

	return nil
}

//
// Fetching and expansion
//

// EnsureDir makes sure the listing of path is cached for every selected
// host, fetching missing ones concurrently. Concurrent calls for the same
// (host, path) pair are collapsed, only the first reaches the server. A
// failed fetch is cached as an empty listing.
func (e *Engine) EnsureDir(ctx context.Context, path string) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, host := range e.SelectedHosts() {
		if e.cache.Has(host, path) {
			continue
		}

		g.Go(func() error {
			key := types.ListingKey{Host: host, Path: path}.String()

			//nolint:errcheck	// the fetch closure absorbs its own errors
			e.fetches.Do(key, func() (any, error) {
				if e.cache.Has(host, path) {
					// A concurrent caller already populated it
					return nil, nil
				}

				listing, err := e.client.Ls(ctx, host, path, e.MinDupSize())
				if err != nil {
					e.log.Warn("listing fetch failed, caching empty result",
						zap.String("host", host), zap.String("path", path), zap.Error(err))
					listing = types.ChildListing{}
				}

				e.cache.Set(host, path, listing)
				return nil, nil
			})

			return ctx.Err()
		})
	}

	return g.Wait()
}

func (e *Engine) ExpandDir(ctx context.Context, path string) error {
	e.mtx.Lock()
	e.expand.Expand(path)
	e.mtx.Unlock()

	return e.EnsureDir(ctx, path)
}

func (e *Engine) IsExpanded(path string) bool {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.expand.IsExpanded(path)
}

func (e *Engine) CollapseDir(path string) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.expand.Collapse(path)
}

// ToggleDir flips the expansion of a directory and returns the new state
func (e *Engine) ToggleDir(ctx context.Context, path string) (bool, error) {
	e.mtx.Lock()
	expanded := e.expand.IsExpanded(path)
	e.mtx.Unlock()

	if expanded {
		e.CollapseDir(path)
		return false, nil
	}

	return true, e.ExpandDir(ctx, path)
}

// SetRoot moves the browse root, normalizing the given path
func (e *Engine) SetRoot(ctx context.Context, path, display string) error {
	path = types.NormalizeQueryPath(path)
	if display == "" {
		display = path
	}

	e.mtx.Lock()
	e.root = path
	e.rootDisplay = display
	e.mtx.Unlock()

	return e.EnsureDir(ctx, path)
}

func (e *Engine) Root() string {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.root
}

//
// Filter and sort state
//

func (e *Engine) SetSort(col int, desc bool) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.builder.SetSort(col, desc)
}

func (e *Engine) SetCategories(categories ...string) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.filter.Categories = tools.NewSet(categories...)
}

func (e *Engine) MinDupSize() int64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.filter.MinDupSize
}

// SetMinDupSizeValue sets the duplicate-size threshold without touching
// cached state. Meant for configuration before Init, use SetMinDupSize on a
// running engine.
func (e *Engine) SetMinDupSizeValue(size int64) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.filter.MinDupSize = size
}

// SetMinDupSize changes the duplicate-size threshold. The duplicate counts
// embedded in every cached listing were computed against the old threshold,
// so the whole cache and all expansion state are dropped and the root is
// refetched.
func (e *Engine) SetMinDupSize(ctx context.Context, size int64) error {
	e.mtx.Lock()
	if e.filter.MinDupSize == size {
		e.mtx.Unlock()
		return nil
	}
	e.filter.MinDupSize = size
	e.expand.Clear()
	e.mtx.Unlock()

	e.cache.Clear()

	return e.EnsureDir(ctx, e.Root())
}

func (e *Engine) DupesOnly() bool {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.filter.DupesOnly
}

// SetDupesOnly switches duplicate-only mode. Enabling it asks every selected
// host which directories under the root contain duplicates and expands the
// tree down to them as a derived layer; disabling retracts that layer,
// manual expansions stay.
func (e *Engine) SetDupesOnly(ctx context.Context, on bool) error {
	e.mtx.Lock()
	e.filter.DupesOnly = on
	if !on {
		e.expand.ClearDerived()
		e.mtx.Unlock()
		return nil
	}
	root := e.root
	e.mtx.Unlock()

	dirs := tools.NewSet[string]()
	var dmtx sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, host := range e.SelectedHosts() {
		g.Go(func() error {
			paths, err := e.client.DupAncestorDirs(gctx, host, root, e.MinDupSize())
			if err != nil {
				e.log.Warn("duplicate-ancestor query failed",
					zap.String("host", host), zap.Error(err))
				return nil
			}

			dmtx.Lock()
			dirs.Add(paths...)
			dmtx.Unlock()

			return nil
		})
	}
	//nolint:errcheck	// the goroutines never fail
	g.Wait()

	e.mtx.Lock()
	e.expand.AddDerived(dirs.List()...)
	e.mtx.Unlock()

	// Listings of the newly opened directories are needed to build their rows
	for _, p := range dirs.Sorted() {
		if err := e.EnsureDir(ctx, p); err != nil {
			return err
		}
	}

	return nil
}

//
// Search overlays
//

// QueueNameSearch schedules a debounced filename search. Queries shorter
// than the minimum clear the overlay immediately. notify, when not nil, is
// called once the overlay is updated.
func (e *Engine) QueueNameSearch(ctx context.Context, query string, notify func()) {
	query = strings.TrimSpace(query)

	if len(query) < MinNameQuery {
		e.nameDeb.Stop()
		e.mtx.Lock()
		e.overlay.ClearName()
		e.mtx.Unlock()

		if notify != nil {
			notify()
		}
		return
	}

	e.nameDeb.Trigger(func() {
		q := api.NewFindQuery()
		q.IName = "*" + query + "*"

		rows := e.findRows(ctx, q)

		e.mtx.Lock()
		e.overlay.SetNameResults(query, rows)
		e.mtx.Unlock()

		if notify != nil {
			notify()
		}
	})
}

// QueueHashSearch schedules a debounced content-hash search
func (e *Engine) QueueHashSearch(ctx context.Context, query string, notify func()) {
	query = strings.ToLower(strings.TrimSpace(query))

	if len(query) < MinHashQuery {
		e.hashDeb.Stop()
		e.mtx.Lock()
		e.overlay.ClearHash()
		e.mtx.Unlock()

		if notify != nil {
			notify()
		}
		return
	}

	e.hashDeb.Trigger(func() {
		q := api.NewFindQuery()
		q.Hash = query

		rows := e.findRows(ctx, q)

		e.mtx.Lock()
		e.overlay.SetHashResults(query, rows)
		e.mtx.Unlock()

		if notify != nil {
			notify()
		}
	})
}

// PinCopies fixes all copies of one content hash in view. path, when not
// empty, is the inventory path of the file the user pinned from, it is
// exempted from further filtering.
func (e *Engine) PinCopies(ctx context.Context, hash, path string) {
	q := api.NewFindQuery()
	q.Hash = hash

	rows := e.findRows(ctx, q)

	e.mtx.Lock()
	e.overlay.SetPinned(path, rows)
	e.mtx.Unlock()
}

// PinDirDuplicate resolves which content hash makes a directory's extra
// copies positive and pins that hash's copies
func (e *Engine) PinDirDuplicate(ctx context.Context, path string) error {
	for _, host := range e.SelectedHosts() {
		hash, err := e.client.DupHash(ctx, host, path, e.MinDupSize())
		if err != nil {
			e.log.Warn("duplicate-hash lookup failed",
				zap.String("host", host), zap.String("path", path), zap.Error(err))
			continue
		}

		if hash != "" {
			e.PinCopies(ctx, hash, "")
			return nil
		}
	}

	return fmt.Errorf("no duplicate hash found under %q", path)
}

// ShowSubtreeDupes loads every duplicate file under path across the
// selected hosts and sets the grouped subtree overlay
func (e *Engine) ShowSubtreeDupes(ctx context.Context, path string) error {
	var (
		all		[]api.FileEntry
		amtx	sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, host := range e.SelectedHosts() {
		g.Go(func() error {
			entries, err := e.client.DuplicatesInSubtree(gctx, host, path, e.MinDupSize(), 0)
			if err != nil {
				e.log.Warn("subtree-duplicates query failed",
					zap.String("host", host), zap.String("path", path), zap.Error(err))
				return nil
			}

			amtx.Lock()
			all = append(all, entries...)
			amtx.Unlock()

			return nil
		})
	}
	//nolint:errcheck	// the goroutines never fail
	g.Wait()

	e.mtx.Lock()
	e.overlay.SetSubtree(path, GroupSubtreeDupes(all))
	e.mtx.Unlock()

	return nil
}

func (e *Engine) Overlay() *Overlay {
	return e.overlay
}

// ClearOverlays drops all search overlays, returning to tree mode
func (e *Engine) ClearOverlays() {
	e.nameDeb.Stop()
	e.hashDeb.Stop()

	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.overlay.Clear()
}

// findRows runs a flat search and converts the results to rows. A failed
// search produces an empty result set, never a stale or erroneous one.
func (e *Engine) findRows(ctx context.Context, q *api.FindQuery) []types.Row {
	entries, err := e.client.Find(ctx, q)
	if err != nil {
		e.log.Warn("search failed, treating result as empty", zap.Error(err))
		entries = nil
	}

	return RowsFromFileEntries(entries, tools.NewSet(e.SelectedHosts()...))
}

//
// Row production
//

// Rows returns the current display rows: the filtered search overlay when
// one is active, the filtered flattened tree otherwise
func (e *Engine) Rows() []types.Row {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	selected := tools.NewSet(e.selected...)

	if rows := e.overlay.Rows(); rows != nil {
		opts := SearchFilterOpts{}
		switch e.overlay.Mode() {
			case ModeSubtree:
				// Subtree results are duplicates by construction
				opts.AllDuplicates = true
			case ModePinned:
				opts.ForcePath = e.overlay.PinnedPath()
		}

		return e.filter.ApplySearch(rows, selected, opts)
	}

	rows := e.builder.BuildRows(e.root, e.rootDisplay)

	return e.filter.Apply(rows, selected, e.expand.IsExpanded)
}
