package index

import (
	"os"

	"github.com/pkg/errors"
)

// File represents an indexed regular file.
type File struct {
	Meta     Metadata `yaml:"meta"`
	Size     uint64   `yaml:"size"`
	Checksum string   `yaml:"checksum"`
}

// fileFromPath stats fullPath and returns a File whose Meta.Path is
// relativePath, with an empty (not yet computed) checksum.
func fileFromPath(fullPath, relativePath string) (File, error) {
	info, err := os.Stat(fullPath)
	if err != nil {
		return File{}, errors.Wrapf(err, "unable to stat file %q", fullPath)
	}
	return File{
		Meta: metadataFromFileInfo(fullPath, relativePath, info),
		Size: uint64(info.Size()),
	}, nil
}

// Directory represents an indexed directory.
type Directory struct {
	Meta Metadata `yaml:"meta"`
}

// directoryFromPath stats fullPath and returns a Directory whose Meta.Path
// is relativePath.
func directoryFromPath(fullPath, relativePath string) (Directory, error) {
	info, err := os.Stat(fullPath)
	if err != nil {
		return Directory{}, errors.Wrapf(err, "unable to stat directory %q", fullPath)
	}
	return Directory{
		Meta: metadataFromFileInfo(fullPath, relativePath, info),
	}, nil
}
