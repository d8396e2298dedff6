package browse

import (
	"github.com/siftinv/sift/common/tools"
	"github.com/siftinv/sift/types"
)

//
// ExpansionState - which directories are currently open
//
// Two layers are kept apart: paths the user toggled by hand, and paths
// derived from the server-reported duplicate-ancestor set. The effective
// state is their union, but retraction rules differ, so they never mix.
//
type ExpansionState struct {
	manual	tools.Set[string]
	derived	tools.Set[string]
}

func NewExpansionState() *ExpansionState {
	return &ExpansionState{
		manual:		tools.NewSet[string](),
		derived:	tools.NewSet[string](),
	}
}

func (es *ExpansionState) IsExpanded(path string) bool {
	return es.manual.Includes(path) || es.derived.Includes(path)
}

func (es *ExpansionState) Expand(path string) {
	es.manual.Add(path)
}

// Collapse closes a directory. Derived expansions under it are retracted
// too, manual expansions elsewhere are left alone.
func (es *ExpansionState) Collapse(path string) {
	es.manual.Del(path)

	for _, p := range es.derived.List() {
		if types.HasPathPrefix(p, path) {
			es.derived.Del(p)
		}
	}
}

// Toggle flips the state of a directory and returns the new state
func (es *ExpansionState) Toggle(path string) bool {
	if es.IsExpanded(path) {
		es.Collapse(path)
		return false
	}

	es.Expand(path)
	return true
}

func (es *ExpansionState) AddDerived(paths ...string) {
	es.derived.Add(paths...)
}

func (es *ExpansionState) ClearDerived() {
	es.derived = tools.NewSet[string]()
}

func (es *ExpansionState) Clear() {
	es.manual = tools.NewSet[string]()
	es.derived = tools.NewSet[string]()
}

// Expanded returns all effectively expanded paths, sorted
func (es *ExpansionState) Expanded() []string {
	all := tools.NewSet(es.manual.List()...)
	all.Add(es.derived.List()...)

	return all.Sorted()
}
