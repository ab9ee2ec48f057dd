package index

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// indexDocument is the on-disk shape of an index file: a flat, sorted
// listing of files and directories in the same self-describing textual
// form a human might hand-edit.
type indexDocument struct {
	Files []File      `yaml:"files"`
	Dirs  []Directory `yaml:"dirs"`
}

// Save writes the index to path as YAML.
func (r *RootIndex) Save(path string) error {
	doc := indexDocument{Files: r.files, Dirs: r.dirs}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, "unable to marshal index")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "unable to write index file %q", path)
	}
	r.dirty = false
	return nil
}

// Open reads an index previously written by Save, re-validating that it
// has no duplicate paths and no file/directory path collision before
// returning it.
func Open(path string) (*RootIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read index file %q", path)
	}
	var doc indexDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "unable to parse index file %q", path)
	}
	index := &RootIndex{files: doc.Files, dirs: doc.Dirs}
	if err := index.normalize(); err != nil {
		return nil, errors.Wrap(err, "index file failed validation")
	}
	return index, nil
}
