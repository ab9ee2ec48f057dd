package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foldercompare/foldercompare/pkg/index"
	"github.com/foldercompare/foldercompare/pkg/logging"
	"github.com/foldercompare/foldercompare/pkg/meta"
)

func rootMain(command *cobra.Command, arguments []string) error {
	if rootConfiguration.version {
		fmt.Println(meta.Version)
		return nil
	}
	return command.Help()
}

var rootCommand = &cobra.Command{
	Use:   "foldercompare",
	Short: "foldercompare indexes directory trees and reports differences and duplicates",
	RunE:  rootMain,
}

var rootConfiguration struct {
	// help indicates whether help information should be shown.
	help bool
	// version indicates whether version information should be shown.
	version bool
	// debug enables verbose logging and extra invariant checking.
	debug bool
}

func init() {
	flags := rootCommand.PersistentFlags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVar(&rootConfiguration.debug, "debug", false, "Enable verbose logging and extra invariant checks")

	localFlags := rootCommand.Flags()
	localFlags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")

	cobra.OnInitialize(func() {
		index.Debug = rootConfiguration.debug
		logging.DebugEnabled = rootConfiguration.debug
	})

	cobra.EnableCommandSorting = false

	rootCommand.AddCommand(
		indexCommand,
		statsCommand,
		diffCommand,
		duplicatesCommand,
		duplicateDirsCommand,
		versionCommand,
	)
}
