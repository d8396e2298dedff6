package types

import (
	"testing"
)

func TestListingKeyString(t *testing.T) {
	lk := ListingKey{Host: "test-host", Path: "/path/to/some/dir"}

	want := "test-host:/path/to/some/dir"
	if lkStr := lk.String(); lkStr != want {
		t.Errorf("ListingKey method String returned %q, want - %q", lkStr, want)
	}
}

func TestListingKeyLess(t *testing.T) {
	// lk1 < lk2 by host
	lk1 := ListingKey{Host: "test-host1", Path: "/path/to/some/dir"}
	lk2 := ListingKey{Host: "test-host2", Path: "/path/to/some/dir"}
	if !lk1.Less(lk2) {
		t.Errorf("Listing key %#v is not lesser than %#v, but must", lk1, lk2)
	}

	// lk3 < lk4 by path
	lk3 := ListingKey{Host: "test-host3", Path: "/path/to/dir1"}
	lk4 := ListingKey{Host: "test-host3", Path: "/path/to/dir2"}
	if !lk3.Less(lk4) {
		t.Errorf("Listing key %#v is not lesser than %#v, but must", lk3, lk4)
	}

	// lk5 == lk6
	lk5 := ListingKey{Host: "test-host4", Path: "/path/to/dir"}
	lk6 := ListingKey{Host: "test-host4", Path: "/path/to/dir"}
	if lk5.Less(lk6) || lk6.Less(lk5) {
		t.Errorf("Listing key %#v is not equal to %#v, but must", lk5, lk6)
	}

	// lk7 > lk8 by host
	lk7 := ListingKey{Host: "test-host6", Path: "/path/to/dir"}
	lk8 := ListingKey{Host: "test-host5", Path: "/path/to/dir"}
	if lk7.Less(lk8) {
		t.Errorf("Listing key %#v not lesser than %#v, but must", lk7, lk8)
	}

	// lk9 > lk10 by path
	lk9 := ListingKey{Host: "test-host7", Path: "/path/to/dir2"}
	lk10 := ListingKey{Host: "test-host7", Path: "/path/to/dir1"}
	if lk9.Less(lk10) {
		t.Errorf("Listing key %#v not lesser than %#v, but must", lk9, lk10)
	}
}
