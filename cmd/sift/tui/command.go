package tui

import (
	"os"
	"path/filepath"

	"github.com/siftinv/sift/browse"
	"github.com/siftinv/sift/cmd/sift/internal/cfg"
	"github.com/siftinv/sift/types"
	"github.com/siftinv/sift/types/api"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type Runner = func(do func(api.Client) *types.CmdRV) error

// NewCommand creates the interactive browser command. The logger is resolved
// lazily, after the root command applied its flags.
func NewCommand(run Runner, log func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:	"browse [path]",
		Short:	"Browse the merged inventory tree interactively",
		Args:	cobra.MaximumNArgs(1),
		RunE:	func(_ *cobra.Command, args []string) error {
			return run(func(c api.Client) *types.CmdRV {
				return Do(c, log(), args)
			})
		},
	}
}

func Do(c api.Client, log *zap.Logger, args []string) *types.CmdRV {
	rv := types.NewCmdRV()

	// The terminal is taken by the browser, debug logging goes to a file
	if cfg.Config().Debug {
		zc := zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{filepath.Join(os.TempDir(), "sift-debug.log")}
		if fileLog, err := zc.Build(); err == nil {
			log = fileLog
			defer log.Sync()
		}
	}

	root := "/"
	if len(args) != 0 {
		root = types.NormalizeQueryPath(args[0])
	}

	eng := browse.NewEngine(c, log)
	if size := cfg.Config().MinDupSize; size > 0 {
		eng.SetMinDupSizeValue(size)
	}

	if err := Run(eng, root, cfg.Config().Host); err != nil {
		return rv.AddErr("browser terminated: %v", err)
	}

	return rv
}
