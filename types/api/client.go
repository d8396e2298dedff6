package api

import (
	"context"

	"github.com/siftinv/sift/types"
)

// Client is the interface of the inventory server query endpoints.
// All operations are read-only and idempotent, so re-issue on retry is safe.
type Client interface {
	// Directory listing: immediate children of path on one host, annotated
	// with same-host duplicate metadata computed against minSize
	Ls(ctx context.Context, host, path string, minSize int64) (types.ChildListing, error)

	// Flat file search
	Find(ctx context.Context, q *FindQuery) ([]FileEntry, error)

	// Duplicate queries
	DupHash(ctx context.Context, host, path string, minSize int64) (string, error)
	DuplicatesInSubtree(ctx context.Context, host, pathPrefix string, minSize int64, limit int) ([]FileEntry, error)
	DupAncestorDirs(ctx context.Context, host, pathPrefix string, minSize int64) ([]string, error)

	// Directory name autocomplete
	Directories(ctx context.Context, query string, limit int) ([]DirSuggestion, error)

	// Hosts and startup
	Hosts(ctx context.Context) ([]HostEntry, error)
	Init(ctx context.Context, path string, minSize int64) (*InitData, error)

	// Statistics
	StatsOverview(ctx context.Context, minSize int64, categories, hosts []string) (*StatsOverview, error)
	StatsDuplicates(ctx context.Context, limit, offset, minCopies int) ([]DuplicateSet, error)
	ScanRuns(ctx context.Context, host string, limit int) ([]ScanRun, error)
}
