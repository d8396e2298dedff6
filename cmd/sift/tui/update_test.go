package tui

import (
	"reflect"
	"testing"
)

func TestHostCycle(t *testing.T) {
	all := []string{"nas-1", "nas-2", "laptop"}

	tests := []struct {
		selected	[]string
		want		[]string
	}{
		// The full selection narrows to the first host
		{ selected: all, want: []string{"nas-1"} },
		// Single hosts advance in server order
		{ selected: []string{"nas-1"}, want: []string{"nas-2"} },
		{ selected: []string{"nas-2"}, want: []string{"laptop"} },
		// The last host wraps around to the full selection
		{ selected: []string{"laptop"}, want: all },
		// A host gone from the server's list restarts the cycle
		{ selected: []string{"vanished"}, want: []string{"nas-1"} },
		// A partial multi-host selection resets to the first host
		{ selected: []string{"nas-1", "nas-2"}, want: []string{"nas-1"} },
	}

	for testN, test := range tests {
		if res := hostCycle(all, test.selected); !reflect.DeepEqual(res, test.want) {
			t.Errorf("[%d] hostCycle(%v, %v) returned %v, want - %v",
				testN, all, test.selected, res, test.want)
		}
	}
}
