package browse

import (
	"testing"

	"github.com/siftinv/sift/types"
)

func TestMergeEntries(t *testing.T) {
	listings := map[string]types.ChildListing{
		"alpha": {
			{ Segment: "pics", Type: types.EntryDir, FileCount: 10, TotalBytes: 1000, DupCount: 2, DupHashCount: 1 },
			{ Segment: "readme.txt", Type: types.EntryFile, FileCount: 1, TotalBytes: 50, SizeBytes: 50,
				Filename: "readme.txt", Hash: "aaa", MTime: 100, Category: types.CatDocument },
		},
		"beta": {
			{ Segment: "pics", Type: types.EntryDir, FileCount: 5, TotalBytes: 500, DupCount: 1, DupHashCount: 1 },
			{ Segment: "music", Type: types.EntryDir, FileCount: 3, TotalBytes: 300 },
			{ Segment: "readme.txt", Type: types.EntryFile, FileCount: 1, TotalBytes: 50, SizeBytes: 50,
				Filename: "README.txt", Hash: "bbb", MTime: 200, Category: types.CatDocument },
		},
	}

	dirs := MergeEntries([]string{"alpha", "beta"}, listings, types.EntryDir)
	files := MergeEntries([]string{"alpha", "beta"}, listings, types.EntryFile)

	// One aggregate per distinct segment
	if len(dirs) != 2 {
		t.Fatalf("merge produced %d directory entries, want - 2", len(dirs))
	}
	if len(files) != 1 {
		t.Fatalf("merge produced %d file entries, want - 1", len(files))
	}

	// Counters are sums of the contributing hosts
	pics := dirs["pics"]
	if pics.FileCount != 15 || pics.TotalBytes != 1500 || pics.DupCount != 3 || pics.DupHashCount != 2 {
		t.Errorf("pics merged to %+v, want counters 15/1500/3/2", pics)
	}
	if len(pics.Hosts) != 2 || pics.Hosts[0] != "alpha" || pics.Hosts[1] != "beta" {
		t.Errorf("pics contributing hosts are %v, want - [alpha beta]", pics.Hosts)
	}

	// A host absent from a segment simply does not contribute
	music := dirs["music"]
	if music.FileCount != 3 || len(music.Hosts) != 1 || music.Hosts[0] != "beta" {
		t.Errorf("music merged to %+v, want only beta's contribution", music)
	}

	// Scalar fields take the first non-empty value in host order
	readme := files["readme.txt"]
	if readme.Hash != "aaa" || readme.MTime != 100 || readme.Filename != "readme.txt" {
		t.Errorf("readme.txt scalars merged to %+v, want alpha's values", readme)
	}
	if readme.SizeBytes != 50 || readme.TotalBytes != 100 {
		t.Errorf("readme.txt sizes merged to own %d / total %d, want - 50 / 100",
			readme.SizeBytes, readme.TotalBytes)
	}
}

func TestMergeEntriesHostOrder(t *testing.T) {
	listings := map[string]types.ChildListing{
		"alpha":	{{ Segment: "x", Type: types.EntryFile, Hash: "from-alpha" }},
		"beta":		{{ Segment: "x", Type: types.EntryFile, Hash: "from-beta" }},
	}

	// The first non-empty scalar follows the caller-supplied host order
	if got := MergeEntries([]string{"alpha", "beta"}, listings, types.EntryFile)["x"].Hash; got != "from-alpha" {
		t.Errorf("merge in order [alpha beta] picked hash %q, want - %q", got, "from-alpha")
	}
	if got := MergeEntries([]string{"beta", "alpha"}, listings, types.EntryFile)["x"].Hash; got != "from-beta" {
		t.Errorf("merge in order [beta alpha] picked hash %q, want - %q", got, "from-beta")
	}
}
