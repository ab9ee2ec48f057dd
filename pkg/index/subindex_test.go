package index

import "testing"

func TestSubIndexFilesAndDirsWindow(t *testing.T) {
	files := []File{
		{Meta: Metadata{Path: "a.txt"}},
		{Meta: Metadata{Path: "sub/b.txt"}},
		{Meta: Metadata{Path: "sub/c.txt"}},
		{Meta: Metadata{Path: "sub/nested/d.txt"}},
		{Meta: Metadata{Path: "zzz.txt"}},
	}
	dirs := []Directory{
		{Meta: Metadata{Path: "sub"}},
		{Meta: Metadata{Path: "sub/nested"}},
	}

	subFiles := subIndexFiles(files, "sub")
	if len(subFiles) != 3 {
		t.Fatalf("subIndexFiles() len = %d, want 3", len(subFiles))
	}

	subDirs := subIndexDirs(dirs, "sub")
	if len(subDirs) != 2 {
		t.Fatalf("subIndexDirs() len = %d, want 2", len(subDirs))
	}
}

func TestSubIndexRootIsEverything(t *testing.T) {
	files := []File{{Meta: Metadata{Path: "a.txt"}}, {Meta: Metadata{Path: "sub/b.txt"}}}
	if got := subIndexFiles(files, ""); len(got) != 2 {
		t.Errorf("subIndexFiles(root) len = %d, want 2", len(got))
	}
}

func TestFindFileAndDirIndex(t *testing.T) {
	files := []File{{Meta: Metadata{Path: "a"}}, {Meta: Metadata{Path: "b"}}}
	if i := findFileIndex(files, "b"); i != 1 {
		t.Errorf("findFileIndex() = %d, want 1", i)
	}
	if i := findFileIndex(files, "missing"); i != -1 {
		t.Errorf("findFileIndex() = %d, want -1", i)
	}
}
