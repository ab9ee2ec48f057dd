package index

import "sort"

// SubIndex is a read-only, borrowed view over the portion of a RootIndex
// that lies within one directory subtree (the root directory itself plus
// all of its descendants). It holds no storage of its own: Files and Dirs
// are slice windows into the owning RootIndex, so taking a SubIndex never
// copies entry data.
type SubIndex struct {
	// Root is the canonical path of the subtree's root directory. An empty
	// Root denotes the whole index.
	Root string
	// Files is the window of files belonging to this subtree, in sorted
	// path order.
	Files []File
	// Dirs is the window of directories belonging to this subtree
	// (including Root itself, unless Root is the index root), in sorted
	// path order.
	Dirs []Directory
}

// subIndexFiles returns the contiguous window of a path-sorted file slice
// whose entries are strict descendants of dir (a file never shares its path
// with a directory). The window starts at the lower bound of dir + "/",
// since every descendant's path begins with that prefix.
func subIndexFiles(files []File, dir string) []File {
	if dir == "" {
		return files
	}
	lo := sort.Search(len(files), func(i int) bool {
		return files[i].Meta.Path >= dir+"/"
	})
	hi := lo + sort.Search(len(files)-lo, func(i int) bool {
		return !pathIsChildOf(files[lo+i].Meta.Path, dir)
	})
	return files[lo:hi]
}

// subIndexDirs returns the contiguous window of a path-sorted directory
// slice whose entries lie within dir (dir itself, plus any strict
// descendant).
func subIndexDirs(dirs []Directory, dir string) []Directory {
	lo := sort.Search(len(dirs), func(i int) bool {
		return dirs[i].Meta.Path >= dir
	})
	hi := lo + sort.Search(len(dirs)-lo, func(i int) bool {
		return !isWithin(dirs[lo+i].Meta.Path, dir)
	})
	return dirs[lo:hi]
}

// isWithin reports whether path equals dir or is a strict descendant of it.
// Because canonical paths sort lexically and a child path always begins
// with its parent's path followed by '/', the set of paths within dir forms
// a contiguous range immediately following dir's own sort position, bounded
// by the first path that is neither equal to dir nor prefixed by "dir/".
func isWithin(path, dir string) bool {
	if dir == "" {
		return true
	}
	if path == dir {
		return true
	}
	return pathIsChildOf(path, dir)
}

// findFileIndex returns the index of the file with the given path within a
// path-sorted slice, or -1 if absent.
func findFileIndex(files []File, path string) int {
	i := sort.Search(len(files), func(i int) bool {
		return files[i].Meta.Path >= path
	})
	if i < len(files) && files[i].Meta.Path == path {
		return i
	}
	return -1
}

// findDirIndex returns the index of the directory with the given path
// within a path-sorted slice, or -1 if absent.
func findDirIndex(dirs []Directory, path string) int {
	i := sort.Search(len(dirs), func(i int) bool {
		return dirs[i].Meta.Path >= path
	})
	if i < len(dirs) && dirs[i].Meta.Path == path {
		return i
	}
	return -1
}

// FileCount returns the number of files in the subtree.
func (s SubIndex) FileCount() int {
	return len(s.Files)
}

// DirCount returns the number of directories in the subtree, excluding the
// root directory itself.
func (s SubIndex) DirCount() int {
	count := len(s.Dirs)
	if findDirIndex(s.Dirs, s.Root) >= 0 {
		count--
	}
	return count
}

// EntryCount returns the total number of files and directories in the
// subtree (directories excluding the root itself).
func (s SubIndex) EntryCount() int {
	return s.FileCount() + s.DirCount()
}

// FileSize returns the sum of the sizes of every file in the subtree.
func (s SubIndex) FileSize() uint64 {
	var total uint64
	for _, f := range s.Files {
		total += f.Size
	}
	return total
}
