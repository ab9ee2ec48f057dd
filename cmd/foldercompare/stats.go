package main

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/foldercompare/foldercompare/pkg/index"
	"github.com/foldercompare/foldercompare/pkg/logging"
	"github.com/foldercompare/foldercompare/pkg/progress"
)

func statsMain(command *cobra.Command, arguments []string) error {
	source := statsConfiguration.source
	indexFile := statsConfiguration.indexFile
	if source == "" && indexFile == "" {
		return errors.New("expected --source or --index-file")
	}

	allowed, err := index.CompileAllowlist(statsConfiguration.allow, statsConfiguration.deny)
	if err != nil {
		return errors.Wrap(err, "invalid allowlist pattern")
	}

	counter := progress.NewCounter()
	stop := reportDiscovery(counter)

	logger := logging.RootLogger.Sublogger("index")
	var result *index.RootIndex
	if indexFile != "" {
		fmt.Println("Opening index file...")
		result, err = index.Open(indexFile)
		if err != nil {
			stop()
			return errors.Wrapf(err, "unable to open index %q", indexFile)
		}
		if source != "" {
			absoluteSource, absErr := filepath.Abs(source)
			if absErr != nil {
				stop()
				return errors.Wrap(absErr, "unable to resolve source path")
			}
			err = result.Update(absoluteSource, allowed, logger, counter)
		}
	} else {
		absoluteSource, absErr := filepath.Abs(source)
		if absErr != nil {
			stop()
			return errors.Wrap(absErr, "unable to resolve source path")
		}
		result, err = index.FromPath(absoluteSource, allowed, logger, counter)
	}
	stop()
	if err != nil {
		return errors.Wrap(err, "unable to build index")
	}

	fmt.Printf("Found %d total entries!\n", result.EntryCount())
	fmt.Printf("%d files.\n", result.FileCount())
	fmt.Printf("%d directories.\n", result.DirCount())

	if indexFile != "" {
		if err := result.Save(indexFile); err != nil {
			return errors.Wrapf(err, "unable to save index %q", indexFile)
		}
	}
	return nil
}

var statsCommand = &cobra.Command{
	Use:   "stats",
	Short: "Show entry counts for a source directory or index file",
	RunE:  statsMain,
}

var statsConfiguration struct {
	source    string
	indexFile string
	allow     []string
	deny      []string
}

func init() {
	flags := statsCommand.Flags()
	flags.StringVar(&statsConfiguration.source, "source", "", "Source directory to index")
	flags.StringVar(&statsConfiguration.indexFile, "index-file", "", "Index file to open (and update, if --source is given)")
	flags.StringSliceVar(&statsConfiguration.allow, "allow", nil, "Only index paths matching one of these regular expressions")
	flags.StringSliceVar(&statsConfiguration.deny, "deny", nil, "Never index paths matching one of these regular expressions")
}
