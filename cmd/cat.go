package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:     "cat",
	Short:   "Write the whole remote object to stdout",
	Example: "cb cat s3://example-bucket/path/to/data.csv > data.csv",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := openObject(cmd.Context(), args[0])
		data, _ := r.Bytes()
		if _, err := os.Stdout.Write(data); err != nil {
			die("could not write object: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}
