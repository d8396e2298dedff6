/*
Package status implements the inventory status report command.
*/
package status

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/siftinv/sift/common/parse"
	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type Runner = func(do func(api.Client) *types.CmdRV) error

const (
	// Scan runs pulled for the running-scan check
	scanRunsLimit		=	10
	// More history when a single host was requested
	scanRunsHostLimit	=	50
)

type options struct {
	host		string
	stats		bool
	verbose		bool
	categories	string
	topDupes	int

	statsCats	[]string
}

func NewCommand(run Runner) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:	"status",
		Short:	"Report per-host scan status of the inventory",
		Args:	cobra.NoArgs,
		RunE:	func(_ *cobra.Command, _ []string) error {
			return run(func(c api.Client) *types.CmdRV {
				return Do(c, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "report only the named host, even when it holds no files")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "include duplicate statistics from the server")
	cmd.Flags().StringVar(&opts.categories, "categories", "",
		"comma separated set of categories the duplicate statistics are limited to")
	cmd.Flags().IntVar(&opts.topDupes, "top", 0, "list the N largest duplicate sets by wasted space")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "list recent scan runs of each reported host")

	return cmd
}

func Do(c api.Client, opts *options) *types.CmdRV {
	rv := types.NewCmdRV()

	if opts.categories != "" {
		if err := parse.SetString(&opts.statsCats, "category", opts.categories, types.Categories()...); err != nil {
			return rv.AddErr("invalid --categories value: %v", err)
		}
	}

	known, err := c.Hosts(context.Background())
	if err != nil {
		return rv.AddErr("cannot query hosts: %v", err)
	}

	hosts := selectHosts(known, opts.host)
	if len(hosts) == 0 {
		if opts.host != "" {
			return rv.AddErr("host %q is not known to the server", opts.host)
		}
		return rv.AddWarn("no scanned hosts found")
	}

	runs, err := c.ScanRuns(context.Background(), opts.host, runsLimit(opts))
	if err != nil {
		rv.AddWarn("cannot query scan runs: %v", err)
	}

	printHosts(hosts, runs)
	printTotals(hosts)

	if opts.stats {
		printStats(c, opts, rv)
	}

	if opts.topDupes > 0 {
		printTopDupes(c, opts.topDupes, rv)
	}

	if opts.verbose {
		printRuns(hosts, runs)
	}

	return rv.AddFound(int64(len(hosts)))
}

// selectHosts keeps the named host when one was given, otherwise
// every host that actually holds files
func selectHosts(known []api.HostEntry, host string) []api.HostEntry {
	hosts := []api.HostEntry{}
	for _, h := range known {
		if host != "" {
			if h.Host == host {
				hosts = append(hosts, h)
			}
			continue
		}
		if h.TotalFiles > 0 {
			hosts = append(hosts, h)
		}
	}

	sort.Slice(hosts, func(i, j int) bool { return hosts[i].Host < hosts[j].Host })

	return hosts
}

func runsLimit(opts *options) int {
	if opts.host != "" {
		return scanRunsHostLimit
	}
	return scanRunsLimit
}

func printHosts(hosts []api.HostEntry, runs []api.ScanRun) {
	// Size the columns for the widest values
	hostW, filesW := len("HOST"), len("FILES")
	for _, h := range hosts {
		hostW = max(hostW, len(h.Host))
		filesW = max(filesW, len(fmt.Sprintf("%d", h.TotalFiles)))
	}

	fmt.Printf("%-*s  %*s  %10s  %8s  %-10s  %s\n",
		hostW, "HOST", filesW, "FILES", "SIZE", "HASHED", "LAST SCAN", "ROOT")

	for _, h := range hosts {
		fmt.Printf("%-*s  %*d  %10s  %7.1f%%  %-10s  %s\n",
			hostW, h.Host,
			filesW, h.TotalFiles,
			humanize.IBytes(uint64(h.TotalBytes)),
			hashedPct(&h),
			lastScan(&h, runs),
			h.LastScanRoot)
	}
}

func hashedPct(h *api.HostEntry) float64 {
	if h.TotalFiles == 0 {
		return 0
	}
	return float64(h.TotalHashed) / float64(h.TotalFiles) * 100
}

// lastScan renders the last-scan column: the date of the last finished scan,
// or a running-scan marker when the host has a scan in flight
func lastScan(h *api.HostEntry, runs []api.ScanRun) string {
	for _, run := range runs {
		if run.Host == h.Host && run.Status == "running" {
			return "scanning..."
		}
	}

	if h.LastScanAt == nil {
		return "never"
	}

	return h.LastScanAt.UTC().Format("2006-01-02")
}

func printTotals(hosts []api.HostEntry) {
	var files, bytes int64
	for _, h := range hosts {
		files += h.TotalFiles
		bytes += h.TotalBytes
	}

	fmt.Printf("\n%d hosts, %d files, %s\n",
		len(hosts), files, humanize.IBytes(uint64(bytes)))
}

func printStats(c api.Client, opts *options, rv *types.CmdRV) {
	var hosts []string
	if opts.host != "" {
		hosts = []string{opts.host}
	}

	so, err := c.StatsOverview(context.Background(), 0, opts.statsCats, hosts)
	if err != nil {
		rv.AddWarn("cannot query statistics: %v", err)
		return
	}

	fmt.Printf("%d unique hashes, %d duplicate sets, %s wasted\n",
		so.UniqueHashes, so.DuplicateSets, humanize.IBytes(uint64(so.WastedBytes)))
}

func printTopDupes(c api.Client, limit int, rv *types.CmdRV) {
	sets, err := c.StatsDuplicates(context.Background(), limit, 0, 0)
	if err != nil {
		rv.AddWarn("cannot query duplicate sets: %v", err)
		return
	}

	fmt.Printf("\nLargest duplicate sets:\n")
	for _, ds := range sets {
		fmt.Printf("  %10s wasted  %2d copies  %s  (%s)\n",
			humanize.IBytes(uint64(ds.WastedBytes)), ds.CopyCount,
			ds.Filename, humanize.IBytes(uint64(ds.SizeBytes)))
	}
}

func printRuns(hosts []api.HostEntry, runs []api.ScanRun) {
	reported := map[string]bool{}
	for _, h := range hosts {
		reported[h.Host] = true
	}

	fmt.Printf("\nRecent scan runs:\n")
	for _, run := range runs {
		if !reported[run.Host] {
			// Skip it
			continue
		}

		root := run.RootPathDisplay
		if root == "" {
			root = run.RootPath
		}

		fmt.Printf("  %s  %-10s  %s:%s\n",
			run.StartedAt.UTC().Format(time.RFC3339), run.Status, run.Host, root)
	}
}
