/*
Package parse provides parsers of compound command line values.
*/
package parse

import (
	"fmt"
	"strings"

	"github.com/siftinv/sift/common/tools"
)

// SetString parses a comma separated set-string vals into fp: the values are
// deduplicated and sorted. When a list of allowed values is given, any value
// outside of it fails the parsing.
func SetString(fp *[]string, setName, vals string, allowed ...string) error {
	set := tools.NewSet(strings.Split(vals, ",")...)

	if len(allowed) == 0 {
		// Check only for empty values
		if set.Includes("") {
			return fmt.Errorf("empty %s value in set-string %q", setName, vals)
		}

		*fp = set.Sorted()
		return nil
	}

	allowedSet := tools.NewSet(allowed...)
	for _, v := range set.Sorted() {
		if !allowedSet.Includes(v) {
			return fmt.Errorf("incorrect %s value %q in set-string %q, allowed: %s",
				setName, v, vals, allowedSet)
		}
	}

	*fp = set.Sorted()

	return nil
}
