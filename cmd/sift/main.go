package main

import (
	"fmt"
	"os"

	"github.com/siftinv/sift/cmd/sift/internal/cfg"
	"github.com/siftinv/sift/common/tools"
	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"
	"github.com/siftinv/sift/webc"

	"github.com/siftinv/sift/cmd/sift/du"
	"github.com/siftinv/sift/cmd/sift/find"
	"github.com/siftinv/sift/cmd/sift/ls"
	"github.com/siftinv/sift/cmd/sift/status"
	"github.com/siftinv/sift/cmd/sift/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	ProgName		=	`sift`
	ProgNameLong	=	`Distributed file inventory browser`
	versMilestone	=	`-alpha.1`
	ProgVers		=	`0.1.0` + versMilestone
)

// Exit codes
const (
	ExitOK		=	0
	// 1 is used by cobra for usage errors
	ExitWarn	=	2
	ExitErr		=	3
)

// Persistent flag values, applied over the file configuration
type rootFlags struct {
	server		string
	host		string
	minDupSize	string
	quiet		bool
	debug		bool
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := cfg.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "ERR: cannot load configuration: %v\n", err)
		return ExitErr
	}

	exitCode := ExitOK
	flags := &rootFlags{}
	var log *zap.Logger

	rootCmd := &cobra.Command{
		Use:		ProgName,
		Short:		ProgNameLong,
		Version:	ProgVers,
		Args:		cobra.MaximumNArgs(1),
		SilenceUsage:	true,
		PersistentPreRunE:	func(_ *cobra.Command, _ []string) error {
			var err error
			if log, err = applyFlags(flags); err != nil {
				return err
			}
			log.Debug("started", zap.String("version", ProgVers))
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.server, "server", "", "inventory server URL, overrides the configuration file")
	pf.StringVar(&flags.host, "host", "", "default host to query, overrides the configuration file")
	pf.StringVar(&flags.minDupSize, "min-dup-size", "", `minimal size of files counted as duplicates, e.g. "10M"`)
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress the status line")
	pf.BoolVar(&flags.debug, "debug", false, "debug logging to stderr")

	// Runs a command body against a fresh server client and converts its
	// result to the process exit code
	runner := func(do func(api.Client) *types.CmdRV) error {
		rv := do(webc.NewClient(cfg.Config().ServerURL, log))
		exitCode = printStatus(rv, true)
		return nil
	}

	// The interactive browser owns the terminal: its status reporting is
	// reduced to warnings and errors, and the client must not log to stderr
	tuiRunner := func(do func(api.Client) *types.CmdRV) error {
		rv := do(webc.NewClient(cfg.Config().ServerURL, zap.NewNop()))
		exitCode = printStatus(rv, false)
		return nil
	}

	rootCmd.AddCommand(
		tui.NewCommand(tuiRunner, func() *zap.Logger { return log }),
		ls.NewCommand(runner),
		find.NewCommand(runner),
		du.NewCommand(runner),
		status.NewCommand(runner),
	)

	// Bare invocation opens the browser
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return tuiRunner(func(c api.Client) *types.CmdRV {
			return tui.Do(c, log, args)
		})
	}

	if err := rootCmd.Execute(); err != nil {
		return ExitErr
	}

	return exitCode
}

// applyFlags overlays the command line flags on the loaded configuration
// and builds the logger accordingly
func applyFlags(flags *rootFlags) (*zap.Logger, error) {
	if flags.server != "" {
		cfg.SetServerURL(flags.server)
	}
	if flags.host != "" {
		cfg.SetHost(flags.host)
	}
	if flags.minDupSize != "" {
		size, err := api.ParseSizeValue(flags.minDupSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --min-dup-size value: %w", err)
		}
		cfg.SetMinDupSize(size)
	}
	cfg.SetQuiet(flags.quiet)
	cfg.SetDebug(flags.debug)

	if !flags.debug {
		return zap.NewNop(), nil
	}

	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{"stderr"}

	return zc.Build()
}

func printStatus(rv *types.CmdRV, found bool) int {
	// Print warnings if occurred
	for _, w := range rv.Warns() {
		fmt.Fprintf(os.Stderr, "WRN: %s\n", w)
	}

	// Print errors if occurred
	for _, e := range rv.Errs() {
		fmt.Fprintf(os.Stderr, "ERR: %s\n", e)
	}

	if found && !cfg.Config().Quiet {
		pref := tools.Tern(rv.OK(), "OK - ", "")
		fmt.Printf("%s%d objects found\n", pref, rv.Found())
	}

	if rv.OK() {
		return ExitOK	// return OK to OS
	}

	// Something went wrong
	return tools.Tern(len(rv.Errs()) != 0,
		ExitErr,	// errors occurred
		ExitWarn)	// only warnings
}
