package api

import (
	"path"
	"strings"
	"time"

	"github.com/siftinv/sift/types"
)

//
// Wire shapes of the inventory server query endpoints
//

// FileEntry - one file from the flat search endpoints
type FileEntry struct {
	Host		string	`json:"host"`
	Drive		string	`json:"drive"`
	PathDisplay	string	`json:"path_display"`
	Filename	string	`json:"filename"`
	Ext			string	`json:"ext"`
	Category	string	`json:"file_category"`
	SizeBytes	int64	`json:"size_bytes"`
	Hash		string	`json:"hash,omitempty"`
	MTime		int64	`json:"mtime,omitempty"`
	OtherHosts	string	`json:"other_hosts,omitempty"`
}

// Path returns the inventory (lowercase) form of the entry path
func (fe *FileEntry) Path() string {
	return strings.ToLower(fe.PathDisplay)
}

// Dir returns the inventory path of the containing directory
func (fe *FileEntry) Dir() string {
	d := path.Dir(fe.Path())
	if d == "." || d == "" {
		return "/"
	}
	return d
}

func (fe *FileEntry) OtherHostsList() []string {
	return types.SplitHostsList(fe.OtherHosts)
}

// HostEntry - one scanned machine known to the server
type HostEntry struct {
	Host			string		`json:"host"`
	LastScanAt		*time.Time	`json:"last_scan_at,omitempty"`
	LastScanRoot	string		`json:"last_scan_root,omitempty"`
	TotalFiles		int64		`json:"total_files"`
	TotalBytes		int64		`json:"total_bytes"`
	TotalHashed		int64		`json:"total_hashed"`
}

// ScanRun - one scan-run record of a host
type ScanRun struct {
	ID				int64		`json:"id"`
	Host			string		`json:"host"`
	RootPath		string		`json:"root_path"`
	RootPathDisplay	string		`json:"root_path_display,omitempty"`
	StartedAt		time.Time	`json:"started_at"`
	Status			string		`json:"status"`
}

// StatsOverview - aggregate inventory statistics
type StatsOverview struct {
	TotalFiles		int64	`json:"total_files"`
	TotalHosts		int64	`json:"total_hosts"`
	UniqueHashes	int64	`json:"unique_hashes"`
	DuplicateSets	int64	`json:"duplicate_sets"`
	WastedBytes		int64	`json:"wasted_bytes"`
	TotalBytes		int64	`json:"total_bytes"`
}

// DuplicateLocation - one copy within a duplicate set
type DuplicateLocation struct {
	Host		string	`json:"host"`
	Drive		string	`json:"drive"`
	PathDisplay	string	`json:"path_display"`
}

// DuplicateSet - all copies of one content hash
type DuplicateSet struct {
	Hash		string				`json:"hash"`
	Filename	string				`json:"filename"`
	SizeBytes	int64				`json:"size_bytes"`
	CopyCount	int64				`json:"copy_count"`
	WastedBytes	int64				`json:"wasted_bytes"`
	Locations	[]DuplicateLocation	`json:"locations"`
}

// DirSuggestion - one directory autocomplete match
type DirSuggestion struct {
	DirPath		string	`json:"dir_path"`
	DirDisplay	string	`json:"dir_display"`
}

// InitData - combined startup response: hosts, a root listing per host and a
// best-guess client hostname. Optional on the server side.
type InitData struct {
	Hosts		[]HostEntry						`json:"hosts"`
	RootLs		map[string]types.ChildListing	`json:"root_ls"`
	ClientHost	string							`json:"client_host,omitempty"`
}
