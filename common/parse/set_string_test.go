package parse

import (
	"reflect"
	"testing"
)

func TestSetString(t *testing.T) {
	tests := []struct {
		vals	string
		allowed	[]string
		want	[]string
		needErr	bool
	} {
		{	// Single value, no restrictions
			vals:	"video",
			want:	[]string{"video"},
		},
		{	// Duplicates collapse, output sorted
			vals:	"video,audio,video,docs",
			want:	[]string{"audio", "docs", "video"},
		},
		{	// Empty value inside the set-string
			vals:	"video,,audio",
			needErr:	true,
		},
		{	// All values allowed
			vals:	"audio,video",
			allowed:	[]string{"audio", "video", "docs"},
			want:	[]string{"audio", "video"},
		},
		{	// Value outside of the allowed list
			vals:	"audio,executables",
			allowed:	[]string{"audio", "video", "docs"},
			needErr:	true,
		},
	}

	for testN, test := range tests {
		var out []string

		err := SetString(&out, "category", test.vals, test.allowed...)

		if test.needErr {
			if err == nil {
				t.Errorf("[%d] parsing %q must fail, but returned %#v", testN, test.vals, out)
			}
			// Go to the next test
			continue
		}

		if err != nil {
			t.Errorf("[%d] parsing %q failed: %v", testN, test.vals, err)
			continue
		}

		if !reflect.DeepEqual(out, test.want) {
			t.Errorf("[%d] parsing %q returned %#v, want - %#v", testN, test.vals, out, test.want)
		}
	}
}
