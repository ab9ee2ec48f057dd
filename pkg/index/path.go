package index

import "strings"

// normalizePath converts a platform path to the engine's canonical form:
// forward-slash separators and no trailing slash. An empty path denotes the
// root of the index and is returned unchanged.
func normalizePath(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// pathParent returns the substring of path up to (but not including) the
// last slash, and true if a slash was found. If path contains no slash, it
// returns ("", false) to indicate the parent is the index root.
func pathParent(path string) (string, bool) {
	index := strings.LastIndexByte(path, '/')
	if index == -1 {
		return "", false
	}
	return path[:index], true
}

// pathName returns the substring of path after the last slash. If path
// contains no slash, the path itself is returned.
func pathName(path string) string {
	index := strings.LastIndexByte(path, '/')
	if index == -1 {
		return path
	}
	return path[index+1:]
}

// pathIsChildOf returns true if path is a strict descendant of dir, i.e. path
// is longer than dir, starts with dir, and the byte immediately following dir
// in path is a slash. An empty dir is the index root and is the parent of
// every non-empty path.
func pathIsChildOf(path, dir string) bool {
	if dir == "" {
		return path != ""
	}
	if len(path) <= len(dir) {
		return false
	}
	return strings.HasPrefix(path, dir) && path[len(dir)] == '/'
}
