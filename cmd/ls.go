package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ozkatz/cloudbytes/pkg/zipfile"
)

var lsCmd = &cobra.Command{
	Use:     "ls",
	Short:   "List the files that exist in a remote zip archive",
	Example: "cb ls s3://example-bucket/path/to/archive.zip",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := openObject(cmd.Context(), args[0])
		files, err := zipfile.NewZipReader(r).ListFiles()
		if err != nil {
			die("could not read zip file contents: %v", err)
		}
		for _, f := range files {
			fmt.Printf("%s\t%-12d\t%-12d\t%s\t%s\n",
				f.Mode(), f.CompressedSize64, f.UncompressedSize64, f.Modified.Format(time.RFC822Z), f.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
