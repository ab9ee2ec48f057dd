package index_test

import (
	"testing"

	"github.com/foldercompare/foldercompare/pkg/index"
	"github.com/foldercompare/foldercompare/pkg/index/indexbuilder"
)

func duplicateDirs(t *testing.T, root *index.RootIndex, opts index.DuplicateDirOptions) [][]string {
	t.Helper()
	groups, err := index.DuplicateDirectories(root, unreachableReader{t}, "", opts)
	if err != nil {
		t.Fatal(err)
	}
	return groups
}

func TestDuplicateDirectoriesGroupsByContent(t *testing.T) {
	idx, err := indexbuilder.New().
		Dir("d1").
		Dir("d2").
		Dir("d3").
		File("d1/x.txt", 10, "sum-x").
		File("d2/x.txt", 10, "sum-x").
		File("d3/x.txt", 10, "sum-other").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	groups := duplicateDirs(t, idx, index.DuplicateDirOptions{})
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1: %v", len(groups), groups)
	}
	if len(groups[0]) != 2 {
		t.Fatalf("len(groups[0]) = %d, want 2: %v", len(groups[0]), groups[0])
	}
}

func TestDuplicateDirectoriesGroupsByContentAcrossDifferentNames(t *testing.T) {
	idx, err := indexbuilder.New().
		Dir("d1").
		Dir("d2").
		File("d1/x.txt", 10, "sum-x").
		File("d1/y.txt", 5, "sum-y").
		File("d2/a.txt", 10, "sum-x").
		File("d2/b.txt", 5, "sum-y").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	groups := duplicateDirs(t, idx, index.DuplicateDirOptions{})
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1: %v", len(groups), groups)
	}
	if len(groups[0]) != 2 {
		t.Fatalf("len(groups[0]) = %d, want 2: %v", len(groups[0]), groups[0])
	}
}

func TestDuplicateDirectoriesIgnoresDifferentStructure(t *testing.T) {
	idx, err := indexbuilder.New().
		Dir("d1").
		Dir("d2").
		File("d1/x.txt", 10, "sum-x").
		File("d2/x.txt", 10, "sum-x").
		File("d2/y.txt", 5, "sum-y").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	groups := duplicateDirs(t, idx, index.DuplicateDirOptions{})
	if len(groups) != 0 {
		t.Errorf("len(groups) = %d, want 0 (different entry counts)", len(groups))
	}
}

func TestDuplicateDirectoriesSkipsEmptyDirs(t *testing.T) {
	idx, err := indexbuilder.New().
		Dir("d1").
		Dir("d2").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	groups := duplicateDirs(t, idx, index.DuplicateDirOptions{})
	if len(groups) != 0 {
		t.Errorf("len(groups) = %d, want 0 (zero-size dirs never compared)", len(groups))
	}
}

func TestDuplicateDirectoriesComputesChecksumOnlyForAdmittedDirs(t *testing.T) {
	idx, err := indexbuilder.New().
		Dir("d1").
		Dir("d2").
		Dir("lonely").
		File("d1/x.txt", 10, "").
		File("d2/x.txt", 10, "").
		File("lonely/y.txt", 99, ""). // distinct DirStats: must never be hashed
		Build()
	if err != nil {
		t.Fatal(err)
	}

	reader := fakeReader{content: map[string][]byte{
		"d1/x.txt": []byte("same"),
		"d2/x.txt": []byte("same"),
	}}
	groups, err := index.DuplicateDirectories(idx, reader, "", index.DuplicateDirOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("groups = %v, want one group of two", groups)
	}
	if !idx.Dirty() {
		t.Error("Dirty() = false, want true after computing checksums")
	}
}

func TestDuplicateDirectoriesRespectsAllowlist(t *testing.T) {
	idx, err := indexbuilder.New().
		Dir("keep").
		Dir("skip").
		File("keep/x.txt", 10, "sum-x").
		File("skip/x.txt", 10, "sum-x").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	allowed, err := index.CompileAllowlist(nil, []string{`^skip`})
	if err != nil {
		t.Fatal(err)
	}
	groups := duplicateDirs(t, idx, index.DuplicateDirOptions{Allowed: allowed})
	if len(groups) != 0 {
		t.Errorf("groups = %v, want none (skip denied, leaving keep alone)", groups)
	}
}
