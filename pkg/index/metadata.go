package index

import (
	"os"
	"time"
)

// Metadata holds the attributes of a single entry (file or directory) that
// are tracked independently of its kind.
type Metadata struct {
	// Path is the entry's canonical, index-root-relative path.
	Path string `yaml:"path"`
	// CreatedTime is the entry's creation time, or the Unix epoch if the
	// platform or filesystem doesn't report one.
	CreatedTime time.Time `yaml:"created_time"`
	// ModifiedTime is the entry's modification time, or the Unix epoch if the
	// platform or filesystem doesn't report one.
	ModifiedTime time.Time `yaml:"modified_time"`
	// Hidden records whether the platform considers the entry hidden. It is
	// always false on platforms with no such concept.
	Hidden bool `yaml:"hidden"`
}

// metadataFromFileInfo constructs Metadata for relativePath from a
// pre-fetched os.FileInfo. fullPath is the path actually passed to os.Stat
// and is used only for platform-specific attribute queries (notably the
// Windows hidden-attribute lookup, which needs a path the filesystem can
// resolve); relativePath becomes the stored, canonical Path.
func metadataFromFileInfo(fullPath, relativePath string, info os.FileInfo) Metadata {
	return Metadata{
		Path:         normalizePath(relativePath),
		CreatedTime:  createdTime(info),
		ModifiedTime: info.ModTime(),
		Hidden:       isHidden(fullPath, info),
	}
}

// Name returns the final path component, i.e. the substring after the last
// slash. If Path contains no slash, Path itself is returned.
func (m *Metadata) Name() string {
	return pathName(m.Path)
}

// Parent returns the substring of Path up to the last slash, and true if a
// slash was present. If Path has no parent (it's a root-level entry), it
// returns ("", false).
func (m *Metadata) Parent() (string, bool) {
	return pathParent(m.Path)
}

// IsChildOf returns true if Path is a strict descendant of dir.
func (m *Metadata) IsChildOf(dir string) bool {
	return pathIsChildOf(m.Path, dir)
}

// Equal reports whether two Metadata values describe the same entry
// attributes. Times are compared with time.Equal: as instants, to the
// nanosecond, ignoring location and monotonic clock readings.
func (m Metadata) Equal(other Metadata) bool {
	return m.Path == other.Path &&
		m.CreatedTime.Equal(other.CreatedTime) &&
		m.ModifiedTime.Equal(other.ModifiedTime) &&
		m.Hidden == other.Hidden
}
