package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/foldercompare/foldercompare/pkg/index"
	"github.com/foldercompare/foldercompare/pkg/logging"
	"github.com/foldercompare/foldercompare/pkg/progress"
)

// noSourceReader is used as the FileReader for a diff side that was loaded
// from a stored index file rather than a live directory: there is no
// filesystem location to read content from, so any attempt to compute a
// checksum that wasn't already cached in the index fails with a clear
// error instead of reading the wrong directory.
type noSourceReader struct{ path string }

func (r noSourceReader) Read(path string, buf *[]byte) error {
	return errors.Errorf("index %q has no cached checksum for %q and no source directory to read it from", r.path, path)
}

// resolveForDiff loads path as a RootIndex, treating it as an existing
// index file if it is a regular file and as a source directory to index
// fresh otherwise. It returns the reader and root directory Diff should use
// to lazily compute any checksum missing from the result.
func resolveForDiff(path string, allowed index.Allowlist, counter *progress.Counter) (*index.RootIndex, index.FileReader, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, "", errors.Wrapf(err, "unable to stat %q", path)
	}
	if !info.IsDir() {
		result, err := index.Open(path)
		if err != nil {
			return nil, nil, "", err
		}
		return result, noSourceReader{path: path}, "", nil
	}

	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, "", errors.Wrapf(err, "unable to resolve path %q", path)
	}
	result, err := index.FromPath(absolute, allowed, logging.RootLogger.Sublogger("index"), counter)
	if err != nil {
		return nil, nil, "", err
	}
	return result, index.NativeFileReader{}, absolute, nil
}

func diffMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return errors.New("expected two paths to compare")
	}

	allowed, err := index.CompileAllowlist(diffConfiguration.allow, diffConfiguration.deny)
	if err != nil {
		return errors.Wrap(err, "invalid allowlist pattern")
	}

	counter := progress.NewCounter()
	stop := reportDiscovery(counter)
	oldIndex, oldReader, oldRoot, err := resolveForDiff(arguments[0], allowed, counter)
	if err != nil {
		stop()
		return errors.Wrapf(err, "unable to index %q", arguments[0])
	}
	newIndex, newReader, newRoot, err := resolveForDiff(arguments[1], allowed, counter)
	stop()
	if err != nil {
		return errors.Wrapf(err, "unable to index %q", arguments[1])
	}

	match := index.MatchFlags{
		Name:     diffConfiguration.matchName,
		Created:  diffConfiguration.matchCreated,
		Modified: diffConfiguration.matchModified,
	}
	changes, err := index.Diff(oldIndex, newIndex, match, oldReader, oldRoot, newReader, newRoot)
	if err != nil {
		return errors.Wrap(err, "unable to compare indexes")
	}
	if len(changes) == 0 {
		fmt.Println("No changes")
		return nil
	}

	for _, change := range changes {
		switch change.Kind {
		case index.Added:
			fmt.Println(color.GreenString("+ %s", change.Path))
		case index.Removed:
			fmt.Println(color.RedString("- %s", change.Path))
		case index.Changed:
			fmt.Println(color.YellowString("Δ %s", change.Path))
		case index.Moved:
			fmt.Printf("→ %s -> %s\n", change.OldPath, change.Path)
		}
	}
	return nil
}

var diffCommand = &cobra.Command{
	Use:   "diff <old> <new>",
	Short: "Show differences between two source directories or index files",
	Args:  cobra.ExactArgs(2),
	RunE:  diffMain,
}

var diffConfiguration struct {
	allow         []string
	deny          []string
	matchName     bool
	matchCreated  bool
	matchModified bool
}

func init() {
	flags := diffCommand.Flags()
	flags.StringSliceVar(&diffConfiguration.allow, "allow", nil, "Only index paths matching one of these regular expressions")
	flags.StringSliceVar(&diffConfiguration.deny, "deny", nil, "Never index paths matching one of these regular expressions")
	flags.BoolVar(&diffConfiguration.matchName, "match-name", false, "Treat same-path files as unchanged without comparing content")
	flags.BoolVar(&diffConfiguration.matchCreated, "match-created", false, "Treat same-path files with equal created times as unchanged")
	flags.BoolVar(&diffConfiguration.matchModified, "match-modified", false, "Treat same-path files with equal modified times as unchanged")
}
