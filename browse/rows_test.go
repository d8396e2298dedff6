package browse

import (
	"testing"

	"github.com/siftinv/sift/common/tools"
	"github.com/siftinv/sift/types"
)

func testCache() *PathCache {
	cache := NewPathCache()

	cache.Set("alpha", "/", types.ChildListing{
		{ Segment: "pics", Type: types.EntryDir, FileCount: 2, TotalBytes: 700 },
		{ Segment: "zz.txt", Type: types.EntryFile, SizeBytes: 10, FileCount: 1, TotalBytes: 10 },
	})
	cache.Set("beta", "/", types.ChildListing{
		{ Segment: "pics", Type: types.EntryDir, FileCount: 1, TotalBytes: 300 },
		{ Segment: "music", Type: types.EntryDir, FileCount: 1, TotalBytes: 100 },
	})

	cache.Set("alpha", "/pics", types.ChildListing{
		{ Segment: "cat.jpg", Type: types.EntryFile, SizeBytes: 400, FileCount: 1, TotalBytes: 400, Category: types.CatImage },
		{ Segment: "dog.jpg", Type: types.EntryFile, SizeBytes: 300, FileCount: 1, TotalBytes: 300, Category: types.CatImage },
	})
	cache.Set("beta", "/pics", types.ChildListing{
		{ Segment: "cat.jpg", Type: types.EntryFile, SizeBytes: 400, FileCount: 1, TotalBytes: 400, Category: types.CatImage },
	})

	return cache
}

func TestBuildRows(t *testing.T) {
	cache := testCache()
	expanded := tools.NewSet("/pics")

	rb := NewRowBuilder(cache, []string{"alpha", "beta"}, expanded.Includes)
	rows := rb.BuildRows("/", "/")

	wantPaths := []string{"/music", "/pics", "/pics/cat.jpg", "/pics/dog.jpg", "/zz.txt"}
	if len(rows) != len(wantPaths) {
		t.Fatalf("BuildRows returned %d rows, want - %d", len(rows), len(wantPaths))
	}
	for i, want := range wantPaths {
		if rows[i].Path != want {
			t.Errorf("row %d is %q, want - %q", i, rows[i].Path, want)
		}
	}

	// Children of the expanded directory follow it with depth+1
	if rows[1].Depth != 0 || rows[2].Depth != 1 || rows[3].Depth != 1 {
		t.Errorf("depths are %d/%d/%d, want - 0/1/1", rows[1].Depth, rows[2].Depth, rows[3].Depth)
	}

	// Contributions of both hosts merged into the pics row
	if rows[1].Entry.TotalBytes != 1000 || len(rows[1].Entry.Hosts) != 2 {
		t.Errorf("pics row merged to %+v, want 1000 bytes from two hosts", rows[1].Entry)
	}
	// cat.jpg exists on both hosts, dog.jpg on one
	if len(rows[2].Entry.Hosts) != 2 || len(rows[3].Entry.Hosts) != 1 {
		t.Errorf("cat.jpg/dog.jpg host counts are %d/%d, want - 2/1",
			len(rows[2].Entry.Hosts), len(rows[3].Entry.Hosts))
	}
}

func TestBuildRowsPreOrder(t *testing.T) {
	cache := testCache()
	cache.Set("alpha", "/pics/raw", types.ChildListing{
		{ Segment: "x.raw", Type: types.EntryFile, SizeBytes: 1, FileCount: 1, TotalBytes: 1 },
	})
	cache.Set("alpha", "/pics", append(cache.Get("alpha", "/pics"),
		types.RawEntry{ Segment: "raw", Type: types.EntryDir, FileCount: 1, TotalBytes: 1 }))

	expanded := tools.NewSet("/pics", "/pics/raw")

	rb := NewRowBuilder(cache, []string{"alpha", "beta"}, expanded.Includes)
	rows := rb.BuildRows("/", "/")

	// Every expanded directory row must be immediately followed by the
	// contiguous block of its children, each one level deeper
	for i, row := range rows {
		if !row.IsDir() || !expanded.Includes(row.Path) {
			continue
		}

		j := i + 1
		for ; j < len(rows) && types.HasPathPrefix(rows[j].Path, row.Path); j++ {
			if rows[j].Parent == row.Path && rows[j].Depth != row.Depth+1 {
				t.Errorf("child %q of %q has depth %d, want - %d",
					rows[j].Path, row.Path, rows[j].Depth, row.Depth+1)
			}
		}

		// No stray descendants after the block
		for ; j < len(rows); j++ {
			if types.HasPathPrefix(rows[j].Path, row.Path) {
				t.Errorf("descendant %q of %q found outside its contiguous block", rows[j].Path, row.Path)
			}
		}
	}
}

func TestBuildRowsSort(t *testing.T) {
	cache := NewPathCache()
	cache.Set("alpha", "/", types.ChildListing{
		{ Segment: "small.bin", Type: types.EntryFile, SizeBytes: 10, FileCount: 1, TotalBytes: 10, MTime: 300 },
		{ Segment: "big.bin", Type: types.EntryFile, SizeBytes: 900, FileCount: 1, TotalBytes: 900, MTime: 100 },
		{ Segment: "noidea.bin", Type: types.EntryFile, FileCount: 1 },	// size and mtime unknown
		{ Segment: "stuff", Type: types.EntryDir, FileCount: 5, TotalBytes: 50 },
	})

	rb := NewRowBuilder(cache, []string{"alpha"}, func(string) bool { return false })

	// Ascending size: unset sorts lowest, directories still first
	rb.SetSort(SortBySize, false)
	rows := rb.BuildRows("/", "/")

	wantAsc := []string{"/stuff", "/noidea.bin", "/small.bin", "/big.bin"}
	for i, want := range wantAsc {
		if rows[i].Path != want {
			t.Errorf("size asc: row %d is %q, want - %q", i, rows[i].Path, want)
		}
	}

	// Descending size: file order flips, directories still first
	rb.SetSort(SortBySize, true)
	rows = rb.BuildRows("/", "/")

	wantDesc := []string{"/stuff", "/big.bin", "/small.bin", "/noidea.bin"}
	for i, want := range wantDesc {
		if rows[i].Path != want {
			t.Errorf("size desc: row %d is %q, want - %q", i, rows[i].Path, want)
		}
	}

	// Date sort
	rb.SetSort(SortByMTime, false)
	rows = rb.BuildRows("/", "/")

	wantDate := []string{"/stuff", "/noidea.bin", "/big.bin", "/small.bin"}
	for i, want := range wantDate {
		if rows[i].Path != want {
			t.Errorf("mtime asc: row %d is %q, want - %q", i, rows[i].Path, want)
		}
	}
}

func TestBuildRowsNameCollation(t *testing.T) {
	cache := NewPathCache()
	cache.Set("alpha", "/", types.ChildListing{
		{ Segment: "banana", SegmentDisplay: "Banana", Type: types.EntryFile, FileCount: 1 },
		{ Segment: "apple", Type: types.EntryFile, FileCount: 1 },
		{ Segment: "cherry", Type: types.EntryFile, FileCount: 1 },
	})

	rb := NewRowBuilder(cache, []string{"alpha"}, func(string) bool { return false })
	rows := rb.BuildRows("/", "/")

	// Case-aware ordering: Banana sorts between apple and cherry,
	// not before both as raw byte order would put it
	want := []string{"/apple", "/banana", "/cherry"}
	for i, w := range want {
		if rows[i].Path != w {
			t.Errorf("row %d is %q, want - %q", i, rows[i].Path, w)
		}
	}
}
