package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/foldercompare/foldercompare/pkg/index"
)

func duplicatesMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New("expected index file path")
	}
	indexFile := arguments[0]

	allowed, err := index.CompileAllowlist(duplicatesConfiguration.allow, duplicatesConfiguration.deny)
	if err != nil {
		return errors.Wrap(err, "invalid allowlist pattern")
	}

	fmt.Println("Opening index file...")
	result, err := index.Open(indexFile)
	if err != nil {
		return errors.Wrapf(err, "unable to open index %q", indexFile)
	}

	fmt.Println("Comparing files...")
	opts := index.DuplicateFileOptions{
		Allowed:       allowed,
		MatchName:     duplicatesConfiguration.matchName,
		MatchCreated:  duplicatesConfiguration.matchCreated,
		MatchModified: duplicatesConfiguration.matchModified,
	}
	groups, err := index.DuplicateFiles(result, "", index.NativeFileReader{}, duplicatesConfiguration.source, opts)
	if err != nil {
		return errors.Wrap(err, "unable to compare files")
	}
	if len(groups) == 0 {
		fmt.Println("No duplicates found")
	} else {
		for _, group := range groups {
			fmt.Printf("Duplicate (%s):\n", humanize.Bytes(group[0].Size))
			for _, file := range group {
				fmt.Printf("  %s\n", file.Meta.Path)
			}
		}
	}

	if result.Dirty() {
		fmt.Println("Updating index with checksums...")
		if err := result.Save(indexFile); err != nil {
			return errors.Wrapf(err, "unable to save index %q", indexFile)
		}
	}
	return nil
}

var duplicatesCommand = &cobra.Command{
	Use:   "duplicates <index-file>",
	Short: "Find files with identical content in an index",
	Args:  cobra.ExactArgs(1),
	RunE:  duplicatesMain,
}

var duplicatesConfiguration struct {
	// source is the directory the index was built from, needed to read
	// file content when computing checksums that weren't already cached.
	source        string
	allow         []string
	deny          []string
	matchName     bool
	matchCreated  bool
	matchModified bool
}

func init() {
	flags := duplicatesCommand.Flags()
	flags.StringVar(&duplicatesConfiguration.source, "source", ".", "Source directory the index was built from")
	flags.StringSliceVar(&duplicatesConfiguration.allow, "allow", nil, "Only consider paths matching one of these regular expressions")
	flags.StringSliceVar(&duplicatesConfiguration.deny, "deny", nil, "Never consider paths matching one of these regular expressions")
	flags.BoolVar(&duplicatesConfiguration.matchName, "match-name", false, "Require duplicate candidates to also share a file name")
	flags.BoolVar(&duplicatesConfiguration.matchCreated, "match-created", false, "Require duplicate candidates to also share a created time")
	flags.BoolVar(&duplicatesConfiguration.matchModified, "match-modified", false, "Require duplicate candidates to also share a modified time")
}
