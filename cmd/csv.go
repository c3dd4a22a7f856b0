package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ozkatz/cloudbytes/pkg/format"
)

var csvCmd = &cobra.Command{
	Use:     "csv",
	Short:   "Decode a remote CSV object and print its rows, tab separated",
	Example: "cb csv gs://example-bucket/path/to/data.csv",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := openObject(cmd.Context(), args[0])
		header, rows, err := format.ReadCSV(r)
		if err != nil {
			die("could not decode CSV: %v", err)
		}
		fmt.Println(strings.Join(header, "\t"))
		for _, row := range rows {
			fmt.Println(strings.Join(row, "\t"))
		}
	},
}

func init() {
	rootCmd.AddCommand(csvCmd)
}
