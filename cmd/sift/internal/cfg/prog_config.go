package cfg

//
// progConfig - assembled program configuration: defaults, overridden by the
// configuration file, overridden by environment, overridden by flags
//
type progConfig struct {
	// Server connection
	ServerURL	string

	// Preferred host of single-host operations, empty - all hosts
	Host		string

	// Minimal size of files counted as duplicates
	MinDupSize	int64

	// Output modes
	Quiet		bool
	Debug		bool

	// Configuration file actually used, empty - no file found
	confPath	string
}

func NewConfig() *progConfig {
	return &progConfig{
		ServerURL:	defaultServerURL,
	}
}

func (pc *progConfig) clone() *progConfig {
	rv := *pc
	return &rv
}

// ConfPath returns the path of the loaded configuration file,
// empty when no file was found
func (pc *progConfig) ConfPath() string {
	return pc.confPath
}
