// Command foldercompare indexes a directory tree, computes file checksums,
// and reports differences and duplicates between indexed trees.
package main

import (
	"github.com/foldercompare/foldercompare/pkg/cmd"
)

func main() {
	rootCommand.SilenceErrors = true
	if err := rootCommand.Execute(); err != nil {
		cmd.Fatal(err)
	}
}
