/*
Package cfg assembles the program configuration from the defaults, the
user's configuration file, the environment and command line flags, in that
order of precedence (the latter wins).
*/
package cfg

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables
const (
	EnvServer	=	`SIFT_SERVER`
	EnvHost		=	`SIFT_HOST`
	EnvConfPath	=	`SIFT_CONFIG_PATH`
)

const defaultServerURL = `http://localhost:8765`

// Default configuration file location
var progConfigSuff = `.sift.config`

var config *progConfig

// Init loads the configuration. Flags are applied later by the command
// layer through the setters below.
func Init() error {
	config = NewConfig()

	// Resolve the configuration file path
	confPath := os.Getenv(EnvConfPath)
	if confPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		confPath = filepath.Join(home, progConfigSuff)
	}

	if err := config.loadConf(confPath); err != nil {
		return err
	}

	// Environment overrides
	if url := os.Getenv(EnvServer); url != "" {
		config.ServerURL = url
	}
	if host := os.Getenv(EnvHost); host != "" {
		config.Host = host
	}

	// OK
	return nil
}

// Config returns a copy of the assembled configuration
func Config() *progConfig {
	return config.clone()
}

//
// Flag-level overrides, applied by the command layer after Init
//

func SetServerURL(url string) {
	if url != "" {
		config.ServerURL = url
	}
}

func SetHost(host string) {
	if host != "" {
		config.Host = host
	}
}

func SetMinDupSize(size int64) {
	if size > 0 {
		config.MinDupSize = size
	}
}

func SetQuiet(quiet bool) {
	config.Quiet = quiet
}

func SetDebug(debug bool) {
	config.Debug = debug
}
