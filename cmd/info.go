package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ozkatz/cloudbytes/pkg/format"
)

var infoCmd = &cobra.Command{
	Use:     "info",
	Short:   "Display the size and checksum of the remote object",
	Example: "cb info s3://example-bucket/path/to/data.csv",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := openObject(cmd.Context(), args[0])
		data, _ := r.Bytes()
		sum, err := format.Checksum(r)
		if err != nil {
			die("could not compute checksum: %v", err)
		}
		fmt.Printf("object: %s\n", r.Path())
		fmt.Printf("total bytes: %d\n", len(data))
		fmt.Printf("total bytes (human readable): %s\n", byteCountIEC(uint64(len(data))))
		fmt.Printf("xxhash64: %016x\n", sum)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
