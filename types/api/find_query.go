package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Default result cap of the flat search endpoint
const DefaultFindLimit = 10000

//
// FindQuery - arguments of the flat file-search endpoint
//
type FindQuery struct {
	Host			string	// empty - search all hosts
	PathPrefix		string
	PathContains	string
	Ext				string
	Category		string
	Hash			string
	Name			string	// glob-style filename pattern, case-sensitive
	IName			string	// glob-style filename pattern, case-insensitive
	HasDuplicates	bool
	Limit			int

	// Size bounds, -1 - unset
	minSize		int64
	maxSize		int64

	// Modification time bounds (unix seconds, 0 - unset). The server does not
	// filter by mtime age, so these are applied client-side via MatchMtime.
	mtimeStart	int64
	mtimeEnd	int64
}

func NewFindQuery() *FindQuery {
	return &FindQuery{
		minSize:	-1,
		maxSize:	-1,
		Limit:		DefaultFindLimit,
	}
}

func (q *FindQuery) Clone() *FindQuery {
	rv := *q
	return &rv
}

func (q *FindQuery) SetMinSize(v int64) *FindQuery {
	q.minSize = v
	return q
}

func (q *FindQuery) MinSize() int64 {
	return q.minSize
}

// ParseSize parses a find-style size filter:
//  * "+1M"  - at least 1 MiB
//  * "-500k" - at most 500 KiB
//  * "100M" - exactly 100 MiB
func (q *FindQuery) ParseSize(sizeStr string) error {
	s := strings.TrimSpace(sizeStr)
	if s == "" {
		return fmt.Errorf("empty size filter")
	}

	// Need to determine filter direction
	var sign byte
	if s[0] == '+' || s[0] == '-' {
		sign = s[0]
		s = s[1:]
	}

	size, err := parseSize(s)
	if err != nil {
		return fmt.Errorf("invalid size filter %q: %w", sizeStr, err)
	}

	switch sign {
		case '+':
			q.minSize = size
		case '-':
			q.maxSize = size
		default:
			q.minSize = size
			q.maxSize = size
	}

	// OK
	return nil
}

// ParseSizeValue parses a plain size value with an optional unit suffix,
// e.g. "512", "500k", "1.5M"
func ParseSizeValue(sizeStr string) (int64, error) {
	return parseSize(sizeStr)
}

var sizeSuffixes = map[byte]int64 {
	'b': 1,
	'k': 1024,
	'm': 1024 * 1024,
	'g': 1024 * 1024 * 1024,
	't': 1024 * 1024 * 1024 * 1024,
	'p': 1024 * 1024 * 1024 * 1024 * 1024,
}
func parseSize(sizeStr string) (int64, error) {
	// Convert size string to lower case to ignore case of possible suffix
	sizeStr = strings.ToLower(sizeStr)
	if sizeStr == "" {
		return -1, fmt.Errorf("empty size value")
	}

	// Multiplier for unit suffix
	multiplier := int64(1)

	// Check for size string has unit suffix
	if mult, ok := sizeSuffixes[sizeStr[len(sizeStr)-1]]; ok {
		multiplier = mult
		// Remove suffix letter from end of size string
		sizeStr = sizeStr[:len(sizeStr)-1]
	}

	// Fractional values like "1.5G" are allowed
	size, err := strconv.ParseFloat(sizeStr, 64)
	if err != nil || size < 0 {
		return -1, fmt.Errorf("invalid size value %q", sizeStr)
	}

	return int64(size * float64(multiplier)), nil
}

// ParseMtime parses a find-style modification age filter, in days:
//  * "-7"  - modified within the last 7 days
//  * "+30" - modified more than 30 days ago
//  * "7"   - modified exactly 7 days ago (one-day window)
func (q *FindQuery) ParseMtime(mtimeStr string) error {
	return q.parseMtimeAt(mtimeStr, time.Now())
}

func (q *FindQuery) parseMtimeAt(mtimeStr string, now time.Time) error {
	s := strings.TrimSpace(mtimeStr)
	if s == "" {
		return fmt.Errorf("empty mtime filter")
	}

	var sign byte
	if s[0] == '+' || s[0] == '-' {
		sign = s[0]
		s = s[1:]
	}

	days, err := strconv.ParseInt(s, 10, 64)
	if err != nil || days < 0 {
		return fmt.Errorf("invalid mtime filter %q", mtimeStr)
	}

	const day = int64(86400)
	nowTS := now.Unix()

	switch sign {
		// Older than N days
		case '+':
			q.mtimeEnd = nowTS - days * day
		// Within last N days
		case '-':
			q.mtimeStart = nowTS - days * day
		// Exactly N days ago
		default:
			q.mtimeStart = nowTS - days * day
			q.mtimeEnd = nowTS - (days - 1) * day
	}

	// OK
	return nil
}

// IsMtime reports whether an mtime filter was set
func (q *FindQuery) IsMtime() bool {
	return q.mtimeStart != 0 || q.mtimeEnd != 0
}

// MatchMtime applies the client-side mtime age filter to one entry.
// Entries without a known mtime always pass.
func (q *FindQuery) MatchMtime(mtime int64) bool {
	if mtime == 0 {
		return true
	}
	if q.mtimeStart != 0 && mtime < q.mtimeStart {
		return false
	}
	if q.mtimeEnd != 0 && mtime > q.mtimeEnd {
		return false
	}
	return true
}

// Values converts the query to endpoint parameters
func (q *FindQuery) Values() url.Values {
	vals := url.Values{}

	if q.Host != "" {
		vals.Set("host", q.Host)
	}
	if q.PathPrefix != "" {
		vals.Set("path_prefix", q.PathPrefix)
	}
	if q.PathContains != "" {
		vals.Set("path_contains", q.PathContains)
	}
	if q.Ext != "" {
		vals.Set("ext", strings.ToLower(strings.TrimPrefix(q.Ext, ".")))
	}
	if q.Category != "" {
		vals.Set("category", q.Category)
	}
	if q.Hash != "" {
		vals.Set("hash", strings.ToLower(q.Hash))
	}
	if q.Name != "" {
		vals.Set("name", q.Name)
	}
	if q.IName != "" {
		vals.Set("iname", q.IName)
	}
	if q.HasDuplicates {
		vals.Set("has_duplicates", "true")
	}
	if q.minSize >= 0 {
		vals.Set("min_size", strconv.FormatInt(q.minSize, 10))
	}
	if q.maxSize >= 0 {
		vals.Set("max_size", strconv.FormatInt(q.maxSize, 10))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultFindLimit
	}
	vals.Set("limit", strconv.Itoa(limit))

	return vals
}
