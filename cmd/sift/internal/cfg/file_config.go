package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/siftinv/sift/common/fschecks"
	"github.com/siftinv/sift/types/api"

	"gopkg.in/ini.v1"
)

// loadConf reads the configuration file, if it exists. Recognized keys:
//
//	[server]
//	url = http://inventory:8765
//
//	[cli]
//	host = nas01
//	min_dup_size = 1M
func (pc *progConfig) loadConf(confPath string) error {
	if _, err := os.Stat(confPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// No file - run on defaults
			return nil
		}

		return fmt.Errorf("cannot access configuration %q: %w", confPath, err)
	}

	// The file may carry a private server URL, it must not be readable
	// by anyone but the owner
	if err := fschecks.PrivOwnership(confPath); err != nil {
		return fmt.Errorf("unsafe configuration file: %w", err)
	}

	f, err := ini.Load(confPath)
	if err != nil {
		return fmt.Errorf("cannot parse configuration %q: %w", confPath, err)
	}

	if v := f.Section("server").Key("url").String(); v != "" {
		pc.ServerURL = v
	}
	if v := f.Section("cli").Key("host").String(); v != "" {
		pc.Host = v
	}
	if v := f.Section("cli").Key("min_dup_size").String(); v != "" {
		size, err := api.ParseSizeValue(v)
		if err != nil {
			return fmt.Errorf("invalid min_dup_size in %q: %w", confPath, err)
		}
		pc.MinDupSize = size
	}

	pc.confPath = confPath

	// OK
	return nil
}
