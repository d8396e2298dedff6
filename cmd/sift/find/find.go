/*
Package find implements the flat file-search command.
*/
package find

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/siftinv/sift/cmd/sift/internal/cfg"
	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type Runner = func(do func(api.Client) *types.CmdRV) error

type options struct {
	name		string
	iname		string
	ext			string
	category	string
	hash		string
	size		string
	mtime		string
	contains	string
	dupesOnly	bool
	allHosts	bool
	lsStyle		bool
	dirsOnly	bool
	limit		int
}

func NewCommand(run Runner) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:	"find [path]",
		Short:	"Search files across the inventory",
		Long:	"Search files across the inventory by name pattern, hash, category, size or age.\n" +
				"The optional path argument limits the search to that subtree.",
		Args:	cobra.MaximumNArgs(1),
		RunE:	func(_ *cobra.Command, args []string) error {
			return run(func(c api.Client) *types.CmdRV {
				return Do(c, opts, args)
			})
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "glob pattern matched against filenames, case-sensitive")
	cmd.Flags().StringVar(&opts.iname, "iname", "", "glob pattern matched against filenames, case-insensitive")
	cmd.Flags().StringVar(&opts.ext, "ext", "", "filename extension, with or without the leading dot")
	cmd.Flags().StringVar(&opts.category, "category", "", "file category, one of: "+categoriesList())
	cmd.Flags().StringVar(&opts.hash, "hash", "", "content hash")
	cmd.Flags().StringVar(&opts.size, "size", "", `size filter: "+1M" - at least, "-500k" - at most, "100M" - exactly`)
	cmd.Flags().StringVar(&opts.mtime, "mtime", "", `modification age in days: "-7" - within, "+30" - older than`)
	cmd.Flags().StringVar(&opts.contains, "path-contains", "", "substring of the full path")
	cmd.Flags().BoolVarP(&opts.dupesOnly, "dupes", "d", false, "only files that have duplicates")
	cmd.Flags().BoolVarP(&opts.allHosts, "all-hosts", "a", false, "search every host, not only the configured one")
	cmd.Flags().BoolVar(&opts.lsStyle, "ls", false, "long ls-style output with size, date and hash")
	cmd.Flags().BoolVar(&opts.dirsOnly, "dirs", false, "match directory names instead of files, the argument is the name substring")
	cmd.Flags().IntVar(&opts.limit, "limit", api.DefaultFindLimit, "maximal number of results")

	return cmd
}

func Do(c api.Client, opts *options, args []string) *types.CmdRV {
	rv := types.NewCmdRV()

	if opts.dirsOnly {
		return findDirs(c, opts, args, rv)
	}

	q, err := buildQuery(opts, args)
	if err != nil {
		return rv.AddErr("invalid search arguments: %v", err)
	}

	entries, err := c.Find(context.Background(), q)
	if err != nil {
		return rv.AddErr("search failed: %v", err)
	}

	for i := range entries {
		printEntry(&entries[i], opts)
	}

	return rv.AddFound(int64(len(entries)))
}

// findDirs matches directory names through the autocomplete endpoint
func findDirs(c api.Client, opts *options, args []string, rv *types.CmdRV) *types.CmdRV {
	if len(args) == 0 {
		return rv.AddErr("--dirs requires a name substring argument")
	}

	dirs, err := c.Directories(context.Background(), args[0], opts.limit)
	if err != nil {
		return rv.AddErr("directory search failed: %v", err)
	}

	for _, dir := range dirs {
		fmt.Println(dir.DirDisplay)
	}

	return rv.AddFound(int64(len(dirs)))
}

func buildQuery(opts *options, args []string) (*api.FindQuery, error) {
	q := api.NewFindQuery()

	if len(args) != 0 {
		q.PathPrefix = types.NormalizeQueryPath(args[0])
	}

	if !opts.allHosts {
		q.Host = singleHost()
	}

	q.Name = opts.name
	q.IName = opts.iname
	q.Ext = opts.ext
	q.Category = opts.category
	q.Hash = opts.hash
	q.PathContains = opts.contains
	q.HasDuplicates = opts.dupesOnly
	q.Limit = opts.limit

	if opts.size != "" {
		if err := q.ParseSize(opts.size); err != nil {
			return nil, err
		}
	}
	if opts.mtime != "" {
		if err := q.ParseMtime(opts.mtime); err != nil {
			return nil, err
		}
	}

	return q, nil
}

// singleHost returns the host to search when --all-hosts is not given:
// the configured host, falling back to the local machine name
func singleHost() string {
	if host := cfg.Config().Host; host != "" {
		return host
	}

	host, err := os.Hostname()
	if err != nil {
		return ""
	}

	return host
}

func printEntry(fe *api.FileEntry, opts *options) {
	if !opts.lsStyle {
		fmt.Printf("%s:%s\n", fe.Host, fe.PathDisplay)
		return
	}

	date := ""
	if fe.MTime != 0 {
		date = time.Unix(fe.MTime, 0).UTC().Format("2006-01-02")
	}

	hash := fe.Hash
	if len(hash) > 8 {
		hash = hash[:8]
	}

	fmt.Printf("%10s  %10s  %8s  %s:%s\n",
		humanize.IBytes(uint64(fe.SizeBytes)), date, hash, fe.Host, fe.PathDisplay)
}

func categoriesList() string {
	out := ""
	for i, cat := range types.Categories() {
		if i != 0 {
			out += ", "
		}
		out += cat
	}
	return out
}
