package types

import (
	"testing"
)

func TestNormalizeQueryPath(t *testing.T) {
	tests := []struct { input, want string } {
		{ "", "/" },
		{ "/", "/" },
		{ ".", "/" },
		{ "/Users/Brian", "/users/brian" },
		{ "users/brian", "/users/brian" },
		{ "/users/brian/", "/users/brian" },
		{ "/users//brian", "/users/brian" },
		{ "/users/brian/../ann", "/users/ann" },
		{ `C:\Users\Brian`, "/users/brian" },
		{ "  /Pics  ", "/pics" },
	}

	for testN, test := range tests {
		if got := NormalizeQueryPath(test.input); got != test.want {
			t.Errorf("[%d] NormalizeQueryPath(%q) returned %q, want - %q",
				testN, test.input, got, test.want)
		}
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct { dir, segment, want string } {
		{ "/", "users", "/users" },
		{ "", "users", "/users" },
		{ "/users", "brian", "/users/brian" },
	}

	for testN, test := range tests {
		if got := JoinPath(test.dir, test.segment); got != test.want {
			t.Errorf("[%d] JoinPath(%q, %q) returned %q, want - %q",
				testN, test.dir, test.segment, got, test.want)
		}
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct { input, want string } {
		{ "/users/brian", "/users" },
		{ "/users", "/" },
		{ "/", "/" },
		{ "", "/" },
	}

	for testN, test := range tests {
		if got := ParentPath(test.input); got != test.want {
			t.Errorf("[%d] ParentPath(%q) returned %q, want - %q",
				testN, test.input, got, test.want)
		}
	}
}

func TestHasPathPrefix(t *testing.T) {
	tests := []struct {
		p		string
		prefix	string
		want	bool
	} {
		{ "/users/brian", "/users", true },
		{ "/users", "/users", true },
		{ "/users2", "/users", false },
		{ "/users/brian", "/", true },
		{ "/anything", "", true },
		{ "/users", "/users/brian", false },
	}

	for testN, test := range tests {
		if got := HasPathPrefix(test.p, test.prefix); got != test.want {
			t.Errorf("[%d] HasPathPrefix(%q, %q) returned %v, want - %v",
				testN, test.p, test.prefix, got, test.want)
		}
	}
}
