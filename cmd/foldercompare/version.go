package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foldercompare/foldercompare/pkg/meta"
)

func versionMain(command *cobra.Command, arguments []string) error {
	fmt.Println(meta.Version)
	return nil
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  versionMain,
}
