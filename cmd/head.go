package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var whenceNames = map[string]int{
	"start":   io.SeekStart,
	"current": io.SeekCurrent,
	"end":     io.SeekEnd,
}

var headCmd = &cobra.Command{
	Use:     "head",
	Short:   "Seek into the remote object and write a range of it to stdout",
	Example: "cb head --offset -16 --whence end s3://example-bucket/path/to/data.parquet | xxd",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		offset, err := cmd.Flags().GetInt64("offset")
		if err != nil {
			die("could not parse command flag offset: %v", err)
		}
		length, err := cmd.Flags().GetInt64("length")
		if err != nil {
			die("could not parse command flag length: %v", err)
		}
		whenceName, err := cmd.Flags().GetString("whence")
		if err != nil {
			die("could not parse command flag whence: %v", err)
		}
		whence, ok := whenceNames[whenceName]
		if !ok {
			die("unknown whence %q, expected start, current or end", whenceName)
		}

		r := openObject(cmd.Context(), args[0])
		if _, err := r.Seek(offset, whence); err != nil {
			die("could not seek: %v", err)
		}
		var src io.Reader = r
		if length >= 0 {
			src = io.LimitReader(r, length)
		}
		if _, err := io.Copy(os.Stdout, src); err != nil {
			die("could not write object: %v", err)
		}
	},
}

func init() {
	headCmd.Flags().Int64("offset", 0, "offset to seek to, relative to --whence")
	headCmd.Flags().String("whence", "start", "seek origin: start, current or end")
	headCmd.Flags().Int64P("length", "n", 1024, "number of bytes to write (-1 for all remaining)")
	rootCmd.AddCommand(headCmd)
}
