// Package indexbuilder constructs index.RootIndex values directly from
// path strings, without touching the filesystem. It exists for tests that
// need deterministic, arbitrary index shapes (including entries that
// couldn't exist on a real filesystem, for exercising validation) and
// would otherwise have to materialize a temporary directory tree for every
// case.
package indexbuilder

import (
	"time"

	"github.com/foldercompare/foldercompare/pkg/index"
)

// Builder accumulates files and directories to be assembled into a
// index.RootIndex by Build.
type Builder struct {
	files []index.File
	dirs  []index.Directory
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// File registers a file at path with the given size and checksum. Timing
// metadata defaults to the Unix epoch; use FileAt for control over it.
func (b *Builder) File(path string, size uint64, checksum string) *Builder {
	return b.FileAt(path, size, checksum, time.Unix(0, 0).UTC())
}

// FileAt registers a file at path, using modified as both its created and
// its modified time.
func (b *Builder) FileAt(path string, size uint64, checksum string, modified time.Time) *Builder {
	b.files = append(b.files, index.File{
		Meta: index.Metadata{
			Path:         path,
			CreatedTime:  modified,
			ModifiedTime: modified,
		},
		Size:     size,
		Checksum: checksum,
	})
	return b
}

// Dir registers a directory at path.
func (b *Builder) Dir(path string) *Builder {
	b.dirs = append(b.dirs, index.Directory{
		Meta: index.Metadata{
			Path:         path,
			CreatedTime:  time.Unix(0, 0).UTC(),
			ModifiedTime: time.Unix(0, 0).UTC(),
		},
	})
	return b
}

// Build assembles the registered entries into a RootIndex, sorting and
// validating them exactly as index.FromPath would.
func (b *Builder) Build() (*index.RootIndex, error) {
	return index.FromEntries(b.files, b.dirs)
}
