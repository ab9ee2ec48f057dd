package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/foldercompare/foldercompare/pkg/index"
)

func duplicateDirsMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New("expected index file path")
	}
	indexFile := arguments[0]

	allowed, err := index.CompileAllowlist(duplicateDirsConfiguration.allow, duplicateDirsConfiguration.deny)
	if err != nil {
		return errors.Wrap(err, "invalid allowlist pattern")
	}

	fmt.Println("Opening index file...")
	result, err := index.Open(indexFile)
	if err != nil {
		return errors.Wrapf(err, "unable to open index %q", indexFile)
	}

	fmt.Println("Comparing directories...")
	opts := index.DuplicateDirOptions{
		Allowed:       allowed,
		MatchName:     duplicateDirsConfiguration.matchName,
		MatchCreated:  duplicateDirsConfiguration.matchCreated,
		MatchModified: duplicateDirsConfiguration.matchModified,
	}
	groups, err := index.DuplicateDirectories(result, index.NativeFileReader{}, duplicateDirsConfiguration.source, opts)
	if err != nil {
		return errors.Wrap(err, "unable to compare directories")
	}
	if len(groups) == 0 {
		fmt.Println("No duplicate directories found")
	} else {
		for _, group := range groups {
			fmt.Println("Duplicate directory set:")
			for _, path := range group {
				fmt.Printf("  %s\n", path)
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

var duplicateDirsCommand = &cobra.Command{
	Use:   "duplicate-dirs <index-file>",
	Short: "Find directories with identical contents in an index",
	Args:  cobra.ExactArgs(1),
	RunE:  duplicateDirsMain,
}

var duplicateDirsConfiguration struct {
	source        string
	allow         []string
	deny          []string
	matchName     bool
	matchCreated  bool
	matchModified bool
}

func init() {
	flags := duplicateDirsCommand.Flags()
	flags.StringVar(&duplicateDirsConfiguration.source, "source", ".", "Source directory the index was built from")
	flags.StringSliceVar(&duplicateDirsConfiguration.allow, "allow", nil, "Only consider directories matching one of these regular expressions")
	flags.StringSliceVar(&duplicateDirsConfiguration.deny, "deny", nil, "Never consider directories matching one of these regular expressions")
	flags.BoolVar(&duplicateDirsConfiguration.matchName, "match-name", false, "Require duplicate candidates to also share child file names")
	flags.BoolVar(&duplicateDirsConfiguration.matchCreated, "match-created", false, "Require duplicate candidates to also share child created times")
	flags.BoolVar(&duplicateDirsConfiguration.matchModified, "match-modified", false, "Require duplicate candidates to also share child modified times")
}
