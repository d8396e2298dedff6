/*
Package du implements the disk-usage summary command.
*/
package du

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/siftinv/sift/cmd/sift/internal/cfg"
	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type Runner = func(do func(api.Client) *types.CmdRV) error

// Number of search results to pull when aggregating by category
const byCategoryLimit = 100_000

type options struct {
	allHosts	bool
	summarize	bool
	human		bool
	sortBy		string
	dupesOnly	bool
	byCategory	bool
}

func NewCommand(run Runner) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:	"du [path]",
		Short:	"Summarize inventory disk usage of a directory",
		Args:	cobra.MaximumNArgs(1),
		RunE:	func(_ *cobra.Command, args []string) error {
			return run(func(c api.Client) *types.CmdRV {
				return Do(c, opts, args)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.allHosts, "all-hosts", "a", false, "query every known host, not only the configured one")
	cmd.Flags().BoolVarP(&opts.summarize, "summarize", "s", false, "print only the total of the queried path")
	cmd.Flags().BoolVarP(&opts.human, "human", "H", false, "human readable sizes")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "size", `sort order, "size" or "name"`)
	cmd.Flags().BoolVarP(&opts.dupesOnly, "dupes", "d", false, "count only entries that have duplicates")
	cmd.Flags().BoolVar(&opts.byCategory, "by-category", false, "aggregate usage by file category instead of by entry")

	return cmd
}

// One output line of the usage report
type usageLine struct {
	name	string
	bytes	int64
}

func Do(c api.Client, opts *options, args []string) *types.CmdRV {
	rv := types.NewCmdRV()

	if opts.sortBy != "size" && opts.sortBy != "name" {
		return rv.AddErr("invalid sort order %q, must be \"size\" or \"name\"", opts.sortBy)
	}

	path := "/"
	if len(args) != 0 {
		path = types.NormalizeQueryPath(args[0])
	}

	hosts, err := resolveHosts(c, opts.allHosts)
	if err != nil {
		return rv.AddErr("cannot resolve hosts to query: %v", err)
	}

	var lines []usageLine
	if opts.byCategory {
		lines = usageByCategory(c, hosts, path, opts, rv)
	} else {
		lines = usageByEntry(c, hosts, path, opts, rv)
	}

	var total int64
	for _, line := range lines {
		total += line.bytes
	}

	if !opts.summarize {
		sortLines(lines, opts.sortBy)
		for _, line := range lines {
			fmt.Printf("%s\t%s\n", fmtSize(line.bytes, opts.human), line.name)
		}
		fmt.Printf("%s\ttotal\n", fmtSize(total, opts.human))
	} else {
		fmt.Printf("%s\t%s\n", fmtSize(total, opts.human), path)
	}

	return rv.AddFound(int64(len(lines)))
}

// usageByEntry sums the size of each child of path over the queried hosts
func usageByEntry(c api.Client, hosts []string, path string, opts *options, rv *types.CmdRV) []usageLine {
	sums := map[string]int64{}

	for _, host := range hosts {
		listing, err := c.Ls(context.Background(), host, path, cfg.Config().MinDupSize)
		if err != nil {
			rv.AddWarn("cannot query host %q: %v", host, err)
			continue
		}

		for _, re := range listing {
			if opts.dupesOnly && re.DupCount == 0 && re.OtherHosts == "" {
				// Skip it
				continue
			}

			name := re.Segment
			if re.SegmentDisplay != "" {
				name = re.SegmentDisplay
			}

			if re.IsDir() {
				sums[types.JoinPath(path, name)] += re.TotalBytes
			} else {
				sums[types.JoinPath(path, name)] += re.SizeBytes
			}
		}
	}

	lines := make([]usageLine, 0, len(sums))
	for name, bytes := range sums {
		lines = append(lines, usageLine{name: name, bytes: bytes})
	}

	return lines
}

// usageByCategory sums the size of every file under path grouped by category
func usageByCategory(c api.Client, hosts []string, path string, opts *options, rv *types.CmdRV) []usageLine {
	sums := map[string]int64{}

	for _, host := range hosts {
		q := api.NewFindQuery()
		q.Host = host
		q.PathPrefix = path
		q.HasDuplicates = opts.dupesOnly
		q.Limit = byCategoryLimit

		entries, err := c.Find(context.Background(), q)
		if err != nil {
			rv.AddWarn("cannot query host %q: %v", host, err)
			continue
		}

		for i := range entries {
			cat := entries[i].Category
			if cat == "" {
				cat = types.CatOther
			}
			sums[cat] += entries[i].SizeBytes
		}
	}

	lines := make([]usageLine, 0, len(sums))
	for name, bytes := range sums {
		lines = append(lines, usageLine{name: name, bytes: bytes})
	}

	return lines
}

func resolveHosts(c api.Client, allHosts bool) ([]string, error) {
	if !allHosts {
		if host := cfg.Config().Host; host != "" {
			return []string{host}, nil
		}
		host, err := os.Hostname()
		if err != nil {
			return nil, err
		}
		return []string{host}, nil
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

func sortLines(lines []usageLine, by string) {
	if by == "name" {
		sort.Slice(lines, func(i, j int) bool { return lines[i].name < lines[j].name })
		return
	}

	// Largest first, name breaks the tie
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].bytes != lines[j].bytes {
			return lines[i].bytes > lines[j].bytes
		}
		return lines[i].name < lines[j].name
	})
}

func fmtSize(n int64, human bool) string {
	if human {
		return humanize.IBytes(uint64(n))
	}
	return fmt.Sprintf("%d", n)
}
