package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/foldercompare/foldercompare/pkg/index"
	"github.com/foldercompare/foldercompare/pkg/logging"
	"github.com/foldercompare/foldercompare/pkg/progress"
)

func indexMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return errors.New("expected source directory and index file path")
	}
	source, indexFile := arguments[0], arguments[1]

	absoluteSource, err := filepath.Abs(source)
	if err != nil {
		return errors.Wrap(err, "unable to resolve source path")
	}

	allowed, err := index.CompileAllowlist(indexConfiguration.allow, indexConfiguration.deny)
	if err != nil {
		return errors.Wrap(err, "invalid allowlist pattern")
	}

	counter := progress.NewCounter()
	stop := reportDiscovery(counter)

	logger := logging.RootLogger.Sublogger("index")
	var result *index.RootIndex
	if _, statErr := os.Stat(indexFile); statErr == nil {
		result, err = index.Open(indexFile)
		if err != nil {
			stop()
			return errors.Wrapf(err, "unable to open index %q", indexFile)
		}
		err = result.Update(absoluteSource, allowed, logger, counter)
	} else {
		result, err = index.FromPath(absoluteSource, allowed, logger, counter)
	}
	stop()
	if err != nil {
		return errors.Wrap(err, "unable to index source")
	}

	fmt.Printf("Found %d total entries.\n", result.EntryCount())

	if indexConfiguration.sha512 {
		fmt.Println("Computing checksums...")
		if err := result.CalculateAll(index.NativeFileReader{}, absoluteSource, nil); err != nil {
			return errors.Wrap(err, "unable to compute checksums")
		}
	}

	if err := result.Save(indexFile); err != nil {
		return errors.Wrapf(err, "unable to save index %q", indexFile)
	}
	return nil
}

var indexCommand = &cobra.Command{
	Use:   "index <source> <index-file>",
	Short: "Index a source directory, creating or updating an index file",
	Args:  cobra.ExactArgs(2),
	RunE:  indexMain,
}

var indexConfiguration struct {
	sha512 bool
	allow  []string
	deny   []string
}

func init() {
	flags := indexCommand.Flags()
	flags.BoolVar(&indexConfiguration.sha512, "sha512", false, "Compute SHA-512 checksums for every file")
	flags.StringSliceVar(&indexConfiguration.allow, "allow", nil, "Only index paths matching one of these regular expressions")
	flags.StringSliceVar(&indexConfiguration.deny, "deny", nil, "Never index paths matching one of these regular expressions")
}
