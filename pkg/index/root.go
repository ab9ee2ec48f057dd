package index

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/foldercompare/foldercompare/pkg/logging"
	"github.com/foldercompare/foldercompare/pkg/progress"
)

// firstLevelSkipNames holds directory names that are pruned when they occur
// immediately under the walked root, independent of their hidden attribute.
// These are platform housekeeping directories (Windows Recycle Bin and
// volume metadata) that should never be treated as user content.
var firstLevelSkipNames = map[string]bool{
	"$RECYCLE.BIN":               true,
	"System Volume Information": true,
}

// RootIndex is the engine's primary data structure: a sorted, flat record
// of every file and directory beneath a single filesystem root, along with
// the metadata and (once computed) checksums needed to diff or
// deduplicate them.
//
// Entries are kept sorted by canonical path at all times, which lets every
// structural query in this package resolve with a binary search plus a
// bounded linear scan instead of a tree walk.
type RootIndex struct {
	files []File
	dirs  []Directory
	dirty bool
}

// NewRootIndex returns an empty, clean index.
func NewRootIndex() *RootIndex {
	return &RootIndex{}
}

// FromEntries assembles a RootIndex directly from pre-built files and
// dirs, sorting and validating them exactly as FromPath would. It is
// exported for test helpers (see pkg/index/indexbuilder) that need to
// construct arbitrary index shapes without touching the filesystem.
func FromEntries(files []File, dirs []Directory) (*RootIndex, error) {
	index := &RootIndex{
		files: append([]File(nil), files...),
		dirs:  append([]Directory(nil), dirs...),
	}
	if err := index.normalize(); err != nil {
		return nil, err
	}
	return index, nil
}

// FromPath walks the filesystem tree rooted at root and returns a populated
// RootIndex. Paths rejected by allowed are skipped entirely, along with
// their descendants if they are directories. Hidden directories (other than
// root itself) are pruned along with their descendants; hidden files are
// skipped individually, with a line logged to logger for each. On the first
// level only, the directory names "$RECYCLE.BIN" and "System Volume
// Information" are pruned as well, hidden or not. Checksums are not
// computed; call CalculateAll afterward to populate them. If counter is
// non-nil, it is updated with the running count of entries discovered so
// far, letting a caller report progress from another goroutine while the
// walk runs.
func FromPath(root string, allowed Allowlist, logger *logging.Logger, counter *progress.Counter) (*RootIndex, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to stat root %q", root)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrUnsupportedSource, "root %q is not a directory", root)
	}

	index := NewRootIndex()
	found := 0
	walkErr := filepath.Walk(root, func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if walkPath == root {
			return nil
		}
		relative, err := filepath.Rel(root, walkPath)
		if err != nil {
			return errors.Wrapf(err, "unable to relativize path %q", walkPath)
		}
		relative = normalizePath(relative)

		if info.IsDir() {
			if isHidden(walkPath, info) {
				return filepath.SkipDir
			}
			if _, hasParent := pathParent(relative); !hasParent && firstLevelSkipNames[info.Name()] {
				return filepath.SkipDir
			}
		} else if isHidden(walkPath, info) {
			logger.Printf("skipping hidden file %q", relative)
			return nil
		}

		if !allowed.IsAllowed(relative) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		found++
		if counter != nil {
			counter.Set(found)
		}

		if info.IsDir() {
			index.dirs = append(index.dirs, Directory{
				Meta: metadataFromFileInfo(walkPath, relative, info),
			})
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		index.files = append(index.files, File{
			Meta: metadataFromFileInfo(walkPath, relative, info),
			Size: uint64(info.Size()),
		})
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrap(walkErr, "unable to walk root")
	}

	if err := index.normalize(); err != nil {
		return nil, err
	}
	index.dirty = true
	return index, nil
}

// normalize sorts files and directories by canonical path and validates
// that no path is duplicated among files, no path is duplicated among
// directories, and no path is shared between a file and a directory.
// That last case is a hard validation failure here rather than an
// unenforced assumption, since silently admitting a file and directory at
// the same path would make every subsequent structural query ambiguous.
func (r *RootIndex) normalize() error {
	sort.Slice(r.files, func(i, j int) bool {
		return r.files[i].Meta.Path < r.files[j].Meta.Path
	})
	sort.Slice(r.dirs, func(i, j int) bool {
		return r.dirs[i].Meta.Path < r.dirs[j].Meta.Path
	})

	seen := make(map[string]bool, len(r.files)+len(r.dirs))
	for _, f := range r.files {
		if seen[f.Meta.Path] {
			return errors.Errorf("duplicate path %q in index", f.Meta.Path)
		}
		seen[f.Meta.Path] = true
	}
	for _, d := range r.dirs {
		if seen[d.Meta.Path] {
			return errors.Errorf("path %q is indexed as both a file and a directory", d.Meta.Path)
		}
		seen[d.Meta.Path] = true
	}

	filePaths := make([]string, len(r.files))
	for i, f := range r.files {
		filePaths[i] = f.Meta.Path
	}
	assertSorted(filePaths)
	dirPaths := make([]string, len(r.dirs))
	for i, d := range r.dirs {
		dirPaths[i] = d.Meta.Path
	}
	assertSorted(dirPaths)

	return nil
}

// AddPath inserts or replaces the single entry at relativePath, re-deriving
// it from the filesystem at fullPath. A replaced file whose metadata is
// unchanged keeps its checksum. For a directory only the directory entry
// itself is recorded; its contents are not walked.
func (r *RootIndex) AddPath(fullPath, relativePath string) error {
	info, err := os.Stat(fullPath)
	if err != nil {
		return errors.Wrapf(err, "unable to stat path %q", fullPath)
	}
	relativePath = normalizePath(relativePath)

	if info.IsDir() {
		dir, err := directoryFromPath(fullPath, relativePath)
		if err != nil {
			return err
		}
		return r.addDir(relativePath, dir)
	}
	if !info.Mode().IsRegular() {
		return errors.Wrapf(ErrUnsupportedSource, "path %q is neither a regular file nor a directory", fullPath)
	}
	file, err := fileFromPath(fullPath, relativePath)
	if err != nil {
		return err
	}
	return r.addFile(relativePath, file)
}

// Update re-walks the filesystem tree rooted at root, merging what it finds
// into the index: files that already exist are refreshed in place (their
// checksum is preserved only if their size and modification time haven't
// changed), new entries are added, and entries no longer present on disk
// are removed. Directories that already exist keep their stored metadata. It is the incremental counterpart to FromPath, used to
// refresh an index file against a source tree that has changed since it
// was last saved.
func (r *RootIndex) Update(root string, allowed Allowlist, logger *logging.Logger, counter *progress.Counter) error {
	fresh, err := FromPath(root, allowed, logger, counter)
	if err != nil {
		return err
	}

	freshByPath := make(map[string]File, len(fresh.files))
	for _, f := range fresh.files {
		freshByPath[f.Meta.Path] = f
	}
	for i, existing := range r.files {
		if updated, ok := freshByPath[existing.Meta.Path]; ok {
			if updated.Size == existing.Size && updated.Meta.ModifiedTime.Equal(existing.Meta.ModifiedTime) {
				updated.Checksum = existing.Checksum
			}
			r.files[i] = updated
			delete(freshByPath, existing.Meta.Path)
		}
	}
	for _, f := range fresh.files {
		if _, stillNew := freshByPath[f.Meta.Path]; stillNew {
			r.files = append(r.files, f)
		}
	}

	existingDirPaths := make(map[string]bool, len(r.dirs))
	for _, d := range r.dirs {
		existingDirPaths[d.Meta.Path] = true
	}
	for _, d := range fresh.dirs {
		if !existingDirPaths[d.Meta.Path] {
			r.dirs = append(r.dirs, d)
		}
	}

	freshFilePaths := make(map[string]bool, len(fresh.files))
	for _, f := range fresh.files {
		freshFilePaths[f.Meta.Path] = true
	}
	keptFiles := r.files[:0]
	for _, f := range r.files {
		if freshFilePaths[f.Meta.Path] {
			keptFiles = append(keptFiles, f)
		}
	}
	r.files = keptFiles

	freshDirPaths := make(map[string]bool, len(fresh.dirs))
	for _, d := range fresh.dirs {
		freshDirPaths[d.Meta.Path] = true
	}
	keptDirs := r.dirs[:0]
	for _, d := range r.dirs {
		if freshDirPaths[d.Meta.Path] {
			keptDirs = append(keptDirs, d)
		}
	}
	r.dirs = keptDirs

	r.dirty = true
	return r.normalize()
}

func (r *RootIndex) addDir(path string, dir Directory) error {
	if findFileIndex(r.files, path) >= 0 {
		return errors.Errorf("path %q is indexed as both a file and a directory", path)
	}
	i := sort.Search(len(r.dirs), func(i int) bool { return r.dirs[i].Meta.Path >= path })
	if i < len(r.dirs) && r.dirs[i].Meta.Path == path {
		r.dirs[i] = dir
	} else {
		r.dirs = append(r.dirs, Directory{})
		copy(r.dirs[i+1:], r.dirs[i:])
		r.dirs[i] = dir
	}
	r.dirty = true
	return nil
}

func (r *RootIndex) addFile(path string, file File) error {
	if findDirIndex(r.dirs, path) >= 0 {
		return errors.Errorf("path %q is indexed as both a file and a directory", path)
	}
	i := sort.Search(len(r.files), func(i int) bool { return r.files[i].Meta.Path >= path })
	if i < len(r.files) && r.files[i].Meta.Path == path {
		if file.Checksum == "" && r.files[i].Meta.Equal(file.Meta) {
			file.Checksum = r.files[i].Checksum
		}
		r.files[i] = file
	} else {
		r.files = append(r.files, File{})
		copy(r.files[i+1:], r.files[i:])
		r.files[i] = file
	}
	r.dirty = true
	return nil
}

// RemoveDir removes the directory at path and every entry beneath it,
// files and directories alike.
func (r *RootIndex) RemoveDir(path string) {
	path = normalizePath(path)

	files := r.files[:0]
	for _, f := range r.files {
		if f.Meta.Path == path || pathIsChildOf(f.Meta.Path, path) {
			continue
		}
		files = append(files, f)
	}
	r.files = files

	dirs := r.dirs[:0]
	for _, d := range r.dirs {
		if d.Meta.Path == path || pathIsChildOf(d.Meta.Path, path) {
			continue
		}
		dirs = append(dirs, d)
	}
	r.dirs = dirs

	r.dirty = true
}

// RemoveFile removes the file at path, if present.
func (r *RootIndex) RemoveFile(path string) {
	path = normalizePath(path)
	if i := findFileIndex(r.files, path); i >= 0 {
		r.files = append(r.files[:i], r.files[i+1:]...)
		r.dirty = true
	}
}

// CalculateAll computes the checksum of every file in the index whose
// checksum is empty, using reader to access file content; checksums already
// present are kept.
// Directories carry no checksum and are untouched.
func (r *RootIndex) CalculateAll(reader FileReader, root string, onProgress func(done, total int)) error {
	var scratch []byte
	total := len(r.files)
	for i := range r.files {
		if _, err := r.ensureFileChecksum(i, reader, root, &scratch); err != nil {
			return err
		}
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}
	return nil
}

// ensureFileChecksum returns the checksum of the file at position i in
// r.files, computing and storing it via reader (reading from root, with
// scratch as the reusable read buffer) if it isn't already populated.
// Marks the index dirty whenever it computes a new checksum.
func (r *RootIndex) ensureFileChecksum(i int, reader FileReader, root string, scratch *[]byte) (string, error) {
	if r.files[i].Checksum != "" {
		return r.files[i].Checksum, nil
	}
	full := filepath.Join(root, filepath.FromSlash(r.files[i].Meta.Path))
	sum, err := computeChecksum(reader, full, scratch)
	if err != nil {
		return "", err
	}
	r.files[i].Checksum = sum
	r.dirty = true
	return sum, nil
}

// Dirty reports whether the index has been modified since it was last
// loaded or saved.
func (r *RootIndex) Dirty() bool {
	return r.dirty
}

// MarkClean clears the dirty flag, typically called after a successful
// save.
func (r *RootIndex) MarkClean() {
	r.dirty = false
}

// FileCount returns the total number of files in the index.
func (r *RootIndex) FileCount() int {
	return len(r.files)
}

// DirCount returns the total number of directories in the index.
func (r *RootIndex) DirCount() int {
	return len(r.dirs)
}

// EntryCount returns the total number of files and directories in the
// index.
func (r *RootIndex) EntryCount() int {
	return len(r.files) + len(r.dirs)
}

// All returns a SubIndex over the entire index.
func (r *RootIndex) All() SubIndex {
	return SubIndex{Root: "", Files: r.files, Dirs: r.dirs}
}

// SubIndex returns a borrowed view over the subtree rooted at dir. dir must
// be the canonical path of a directory already present in the index, or
// the empty string for the index root.
func (r *RootIndex) SubIndex(dir string) (SubIndex, error) {
	dir = normalizePath(dir)
	if dir != "" && findDirIndex(r.dirs, dir) < 0 {
		return SubIndex{}, errors.Errorf("no such directory %q in index", dir)
	}
	return SubIndex{
		Root:  dir,
		Files: subIndexFiles(r.files, dir),
		Dirs:  subIndexDirs(r.dirs, dir),
	}, nil
}

// File returns a copy of the file at path, and true if it exists.
func (r *RootIndex) File(path string) (File, bool) {
	path = normalizePath(path)
	if i := findFileIndex(r.files, path); i >= 0 {
		return r.files[i], true
	}
	return File{}, false
}

// DirStats describes a directory's structural signature, used as the
// bucket key for duplicate-directory detection: two directories with
// different stats can never be content-identical.
type DirStats struct {
	FileCount uint64
	FileSize  uint64
	DirCount  uint64
}

// dirStats computes the structural signature of the subtree rooted at dir.
func (r *RootIndex) dirStats(dir string) (DirStats, error) {
	sub, err := r.SubIndex(dir)
	if err != nil {
		return DirStats{}, err
	}
	return DirStats{
		FileCount: uint64(sub.FileCount()),
		FileSize:  sub.FileSize(),
		DirCount:  uint64(sub.DirCount()),
	}, nil
}
