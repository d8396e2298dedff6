package types

import (
	"strings"
)

// Supported entry types
const (
	// XXX Do not forget to update EntryTypes() when you change this list
	EntryFile	=	"file"
	EntryDir	=	"dir"
)

func EntryTypes() []string {
	return []string {
		EntryFile,
		EntryDir,
	}
}

// File categories assigned by the scanning agent
const (
	// XXX Do not forget to update Categories() when you change this list
	CatImage		=	"image"
	CatVideo		=	"video"
	CatAudio		=	"audio"
	CatDocument		=	"document"
	CatArchive		=	"archive"
	CatCode			=	"code"
	CatDisk			=	"disk"
	CatFont			=	"font"
	CatExecutable	=	"executable"
	CatOther		=	"other"
)

func Categories() []string {
	return []string {
		CatImage,
		CatVideo,
		CatAudio,
		CatDocument,
		CatArchive,
		CatCode,
		CatDisk,
		CatFont,
		CatExecutable,
		CatOther,
	}
}

//
// Raw entry - one child of one directory as reported by a single host
//
type RawEntry struct {
	Segment			string	`json:"segment"`			// path segment within the queried directory
	SegmentDisplay	string	`json:"segment_display,omitempty"`	// original-case segment
	Type			string	`json:"entry_type"`			// file or dir
	FileCount		int64	`json:"file_count"`			// files under this entry (1 for a file)
	TotalBytes		int64	`json:"total_bytes"`		// bytes under this entry
	DupCount		int64	`json:"dup_count"`			// same-host duplicate file instances under this entry
	DupHashCount	int64	`json:"dup_hash_count"`		// distinct duplicated hashes under this entry
	Filename		string	`json:"filename,omitempty"`			// files only
	SizeBytes		int64	`json:"size_bytes,omitempty"`		// files only - own size
	Hash			string	`json:"hash,omitempty"`				// files only - content hash
	MTime			int64	`json:"mtime,omitempty"`			// files only - modification time, unix seconds
	LastSeenAt		string	`json:"last_seen_at,omitempty"`		// files only
	Category		string	`json:"file_category,omitempty"`	// files only
	PathDisplay		string	`json:"path_display,omitempty"`		// files only - full display path
	OtherHosts		string	`json:"other_hosts,omitempty"`		// comma-joined other hosts holding this hash
	HardLinked		bool	`json:"is_hard_linked,omitempty"`	// files only
}

func (re *RawEntry) IsDir() bool {
	return re.Type == EntryDir
}

// OtherHostsList splits the comma-joined other_hosts field, skipping empty items
func (re *RawEntry) OtherHostsList() []string {
	return SplitHostsList(re.OtherHosts)
}

// ChildListing - the immediate children of one directory on one host.
// A nil/empty listing means "the host reported nothing for this path",
// which covers both an empty directory and a failed fetch.
type ChildListing []RawEntry

func SplitHostsList(joined string) []string {
	if joined == "" {
		return nil
	}

	hosts := make([]string, 0, strings.Count(joined, ",") + 1)
	for _, h := range strings.Split(joined, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}

	return hosts
}
