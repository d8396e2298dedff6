/*
Package ls implements the flat directory-listing command.
*/
package ls

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/siftinv/sift/cmd/sift/internal/cfg"
	"github.com/siftinv/sift/common/tools"
	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type Runner = func(do func(api.Client) *types.CmdRV) error

type options struct {
	allHosts	bool
	long		bool
	human		bool
	sortSize	bool
	sortTime	bool
	reverse		bool
	dupesOnly	bool
	fullHash	bool
}

func NewCommand(run Runner) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:	"ls [path]",
		Short:	"List inventory entries of a directory",
		Args:	cobra.MaximumNArgs(1),
		RunE:	func(_ *cobra.Command, args []string) error {
			return run(func(c api.Client) *types.CmdRV {
				return Do(c, opts, args)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.allHosts, "all-hosts", "a", false, "query every known host, not only the configured one")
	cmd.Flags().BoolVarP(&opts.long, "long", "l", false, "long format with size, date and hash")
	cmd.Flags().BoolVarP(&opts.human, "human", "H", false, "human readable sizes")
	cmd.Flags().BoolVarP(&opts.sortSize, "sort-size", "S", false, "sort by size, largest first")
	cmd.Flags().BoolVarP(&opts.sortTime, "sort-time", "t", false, "sort by modification time, newest first")
	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "reverse the sort order")
	cmd.Flags().BoolVarP(&opts.dupesOnly, "dupes", "d", false, "show only entries with duplicates")
	cmd.Flags().BoolVar(&opts.fullHash, "full-hash", false, "print full content hashes instead of the first 8 characters")

	return cmd
}

// One listing entry tagged with the host it came from
type hostEntry struct {
	host	string
	types.RawEntry
}

func Do(c api.Client, opts *options, args []string) *types.CmdRV {
	rv := types.NewCmdRV()

	path := "/"
	if len(args) != 0 {
		path = types.NormalizeQueryPath(args[0])
	}

	hosts, err := resolveHosts(c, opts.allHosts)
	if err != nil {
		return rv.AddErr("cannot resolve hosts to query: %v", err)
	}

	// Collect the listing of every queried host
	entries := []hostEntry{}
	for _, host := range hosts {
		listing, err := c.Ls(context.Background(), host, path, cfg.Config().MinDupSize)
		if err != nil {
			rv.AddWarn("cannot query host %q: %v", host, err)
			continue
		}
		for _, re := range listing {
			entries = append(entries, hostEntry{host: host, RawEntry: re})
		}
	}

	// An empty result may mean the path names a file, not a directory.
	// Look it up in the listing of the parent.
	fileLookup := false
	if len(entries) == 0 && path != "/" {
		entries = lookupFile(c, hosts, path, rv)
		fileLookup = len(entries) != 0
	}

	if opts.dupesOnly {
		kept := entries[:0]
		for _, he := range entries {
			if he.DupCount > 0 || he.OtherHosts != "" {
				kept = append(kept, he)
			}
		}
		entries = kept
	}

	sortEntries(entries, opts)

	if opts.long && !fileLookup {
		printTotal(entries, opts)
	}

	for i := range entries {
		printEntry(&entries[i], opts)
	}

	return rv.AddFound(int64(len(entries)))
}

func resolveHosts(c api.Client, allHosts bool) ([]string, error) {
	if !allHosts {
		return []string{singleHost()}, nil
	}

	known, err := c.Hosts(context.Background())
	if err != nil {
		return nil, err
	}

	hosts := make([]string, 0, len(known))
	for _, h := range known {
		hosts = append(hosts, h.Host)
	}

	return hosts, nil
}

// singleHost returns the host to query when --all-hosts is not given:
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

func lookupFile(c api.Client, hosts []string, path string, rv *types.CmdRV) []hostEntry {
	parent := types.ParentPath(path)
	name := path[strings.LastIndex(path, "/")+1:]

	entries := []hostEntry{}
	for _, host := range hosts {
		listing, err := c.Ls(context.Background(), host, parent, cfg.Config().MinDupSize)
		if err != nil {
			rv.AddWarn("cannot query host %q: %v", host, err)
			continue
		}

		for _, re := range listing {
			if !re.IsDir() && re.Segment == name {
				entries = append(entries, hostEntry{host: host, RawEntry: re})
			}
		}
	}

	return entries
}

func sortEntries(entries []hostEntry, opts *options) {
	switch {
		case opts.sortSize:
			// Largest first unless reversed
			sort.SliceStable(entries, func(i, j int) bool {
				if opts.reverse {
					return entries[i].TotalBytes < entries[j].TotalBytes
				}
				return entries[i].TotalBytes > entries[j].TotalBytes
			})
		case opts.sortTime:
			sort.SliceStable(entries, func(i, j int) bool {
				if opts.reverse {
					return entries[i].MTime < entries[j].MTime
				}
				return entries[i].MTime > entries[j].MTime
			})
		default:
			// Directories first, then by name
			sort.SliceStable(entries, func(i, j int) bool {
				di, dj := entries[i].IsDir(), entries[j].IsDir()
				less := true
				switch {
					case di != dj:
						less = di
					default:
						less = entries[i].Segment < entries[j].Segment
				}
				return less != opts.reverse
			})
	}
}

func printTotal(entries []hostEntry, opts *options) {
	var totalBytes, totalDups int64
	for i := range entries {
		totalBytes += entries[i].TotalBytes
		if entries[i].OtherHosts != "" {
			totalDups++
		}
	}

	if totalDups != 0 {
		fmt.Printf("total %s  (%d duplicates on other hosts)\n",
			fmtSize(totalBytes, opts.human), totalDups)
	} else {
		fmt.Printf("total %s\n", fmtSize(totalBytes, opts.human))
	}
}

func printEntry(he *hostEntry, opts *options) {
	also := ""
	if he.OtherHosts != "" {
		also = "  [also: " + he.OtherHosts + "]"
	}

	name := he.Segment
	if he.SegmentDisplay != "" {
		name = he.SegmentDisplay
	}

	if !opts.long {
		// Short format
		if he.IsDir() {
			fmt.Printf("%s/%s\n", name, also)
		} else if opts.fullHash {
			fmt.Printf("%s  %s%s\n", fmtHash(he.Hash, true), name, also)
		} else {
			fmt.Printf("%s%s\n", name, also)
		}
		return
	}

	// Long format
	if he.IsDir() {
		fmt.Printf("drwxr-xr-x  %10s  %10s  %s  %s/  (%d files)%s\n",
			fmtSize(he.TotalBytes, opts.human), "", fmtHash("", opts.fullHash),
			name, he.FileCount, also)
		return
	}

	fmt.Printf("-rw-r--r--  %10s  %10s  %s  %s%s\n",
		fmtSize(he.SizeBytes, opts.human), fmtMTime(he.MTime),
		fmtHash(he.Hash, opts.fullHash), name, also)
}

func fmtSize(n int64, human bool) string {
	if human {
		return humanize.IBytes(uint64(n))
	}
	return fmt.Sprintf("%d", n)
}

func fmtMTime(mtime int64) string {
	if mtime == 0 {
		return ""
	}
	return time.Unix(mtime, 0).UTC().Format("2006-01-02")
}

func fmtHash(hash string, full bool) string {
	width := tools.Tern(full, 64, 8)
	if hash == "" {
		return fmt.Sprintf("%*s", width, "")
	}
	if !full && len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
