package index

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFromPathEmptyRoot(t *testing.T) {
	root := t.TempDir()
	idx, err := FromPath(root, Allowlist{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if idx.EntryCount() != 0 {
		t.Errorf("EntryCount() = %d, want 0", idx.EntryCount())
	}
}

func TestFromPathWalksTree(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), "hello")
	mustWriteFile(t, filepath.Join(root, "sub", "b.txt"), "world")

	idx, err := FromPath(root, Allowlist{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if idx.FileCount() != 2 {
		t.Errorf("FileCount() = %d, want 2", idx.FileCount())
	}
	if idx.DirCount() != 1 {
		t.Errorf("DirCount() = %d, want 1", idx.DirCount())
	}
	if _, ok := idx.File("a.txt"); !ok {
		t.Error("expected a.txt in index")
	}
	if _, ok := idx.File("sub/b.txt"); !ok {
		t.Error("expected sub/b.txt in index")
	}
}

func TestFromPathHonorsAllowlist(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "keep.txt"), "x")
	mustWriteFile(t, filepath.Join(root, "skip.log"), "x")

	allowed, err := CompileAllowlist(nil, []string{`\.log$`})
	if err != nil {
		t.Fatal(err)
	}
	idx, err := FromPath(root, allowed, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := idx.File("keep.txt"); !ok {
		t.Error("expected keep.txt in index")
	}
	if _, ok := idx.File("skip.log"); ok {
		t.Error("did not expect skip.log in index")
	}
}

func TestRemoveDirRemovesDescendants(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "sub", "a.txt"), "x")
	mustWriteFile(t, filepath.Join(root, "sub", "nested", "b.txt"), "y")
	mustWriteFile(t, filepath.Join(root, "other.txt"), "z")

	idx, err := FromPath(root, Allowlist{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	idx.RemoveDir("sub")

	if _, ok := idx.File("sub/a.txt"); ok {
		t.Error("sub/a.txt should have been removed")
	}
	if _, ok := idx.File("sub/nested/b.txt"); ok {
		t.Error("sub/nested/b.txt should have been removed")
	}
	if _, ok := idx.File("other.txt"); !ok {
		t.Error("other.txt should remain")
	}
	if !idx.Dirty() {
		t.Error("index should be dirty after RemoveDir")
	}
}

func TestRemoveRootClearsIndex(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), "x")
	mustWriteFile(t, filepath.Join(root, "sub", "b.txt"), "y")

	idx, err := FromPath(root, Allowlist{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	idx.RemoveDir("")

	if idx.EntryCount() != 0 {
		t.Errorf("EntryCount() = %d, want 0 after removing root", idx.EntryCount())
	}
}

func TestFromEntriesRejectsFileDirectoryCollision(t *testing.T) {
	files := []File{{Meta: Metadata{Path: "a/b"}}}
	dirs := []Directory{{Meta: Metadata{Path: "a/b"}}}
	if _, err := FromEntries(files, dirs); err == nil {
		t.Error("expected error for colliding file/directory paths")
	}
}

func TestFromEntriesRejectsDuplicateFiles(t *testing.T) {
	files := []File{
		{Meta: Metadata{Path: "a"}},
		{Meta: Metadata{Path: "a"}},
	}
	if _, err := FromEntries(files, nil); err == nil {
		t.Error("expected error for duplicate file paths")
	}
}

func TestSubIndexOfNestedDirectory(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "sub", "a.txt"), "x")
	mustWriteFile(t, filepath.Join(root, "sub", "nested", "b.txt"), "y")
	mustWriteFile(t, filepath.Join(root, "other.txt"), "z")

	idx, err := FromPath(root, Allowlist{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	sub, err := idx.SubIndex("sub")
	if err != nil {
		t.Fatal(err)
	}
	if sub.FileCount() != 2 {
		t.Errorf("FileCount() = %d, want 2", sub.FileCount())
	}
	if sub.DirCount() != 1 {
		t.Errorf("DirCount() = %d, want 1 (excluding root)", sub.DirCount())
	}
}

func TestFromPathSkipsHiddenDirectory(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "visible.txt"), "x")
	mustWriteFile(t, filepath.Join(root, ".cache", "a.txt"), "y")

	idx, err := FromPath(root, Allowlist{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := idx.File("visible.txt"); !ok {
		t.Error("expected visible.txt in index")
	}
	if _, err := idx.SubIndex(".cache"); err == nil {
		t.Error("did not expect hidden directory .cache in index")
	}
	if _, ok := idx.File(".cache/a.txt"); ok {
		t.Error("did not expect a file under a hidden directory in index")
	}
}

func TestFromPathSkipsHiddenFile(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, ".env"), "secret")
	mustWriteFile(t, filepath.Join(root, "visible.txt"), "x")

	idx, err := FromPath(root, Allowlist{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := idx.File(".env"); ok {
		t.Error("did not expect hidden file .env in index")
	}
	if _, ok := idx.File("visible.txt"); !ok {
		t.Error("expected visible.txt in index")
	}
}

func TestFromPathSkipsFirstLevelRecycleBin(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "$RECYCLE.BIN", "deleted.txt"), "x")
	mustWriteFile(t, filepath.Join(root, "System Volume Information", "tracking.dat"), "y")
	mustWriteFile(t, filepath.Join(root, "sub", "$RECYCLE.BIN", "nested.txt"), "z")

	idx, err := FromPath(root, Allowlist{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := idx.SubIndex("$RECYCLE.BIN"); err == nil {
		t.Error("did not expect first-level $RECYCLE.BIN in index")
	}
	if _, err := idx.SubIndex("System Volume Information"); err == nil {
		t.Error("did not expect first-level System Volume Information in index")
	}
	if _, err := idx.SubIndex("sub/$RECYCLE.BIN"); err != nil {
		t.Error("expected non-first-level $RECYCLE.BIN to remain in index")
	}
	if _, ok := idx.File("sub/$RECYCLE.BIN/nested.txt"); !ok {
		t.Error("expected file under non-first-level $RECYCLE.BIN to remain in index")
	}
}

func TestSubIndexUnknownDirectory(t *testing.T) {
	idx := NewRootIndex()
	if _, err := idx.SubIndex("missing"); err == nil {
		t.Error("expected error for unknown directory")
	}
}
