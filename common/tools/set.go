package tools

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

//
// Set - unordered collection of unique items
//
type Set[T constraints.Ordered] map[T]bool

func NewSet[T constraints.Ordered](values ...T) Set[T] {
	return make(Set[T], len(values)).Add(values...)
}

func (ss Set[T]) Add(values ...T) Set[T] {
	for _, v := range values {
		ss[v] = true
	}

	return ss
}

func (ss Set[T]) Del(values ...T) Set[T] {
	for _, v := range values {
		delete(ss, v)
	}

	return ss
}

func (ss Set[T]) Includes(v T) bool {
	return ss[v]
}

// List returns the set items in map iteration order
func (ss Set[T]) List() []T {
	items := make([]T, 0, len(ss))
	for v := range ss {
		items = append(items, v)
	}

	return items
}

func (ss Set[T]) Sorted() []T {
	items := ss.List()
	sort.Slice(items, func(i, j int) bool {
		return items[i] < items[j]
	})

	return items
}

func (ss Set[T]) String() string {
	out := make([]string, 0, len(ss))
	for _, v := range ss.Sorted() {
		out = append(out, fmt.Sprintf("%v", v))
	}

	return "(" + strings.Join(out, ", ") + ")"
}

func (ss Set[T]) Empty() bool {
	return len(ss) == 0
}

func (ss Set[T]) Len() int {
	return len(ss)
}
