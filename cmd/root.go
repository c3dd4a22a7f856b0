package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	CloudBytesVersion = "0.0.1dev"
)

var rootCmd = &cobra.Command{
	Use:               "cb",
	Short:             "Read remote objects as seekable byte sources (fetched once, served from memory)",
	Version:           CloudBytesVersion,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dump, _ := cmd.Flags().GetBool("metrics"); dump {
			dumpMetrics(os.Stderr)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, err = fmt.Fprintln(os.Stderr, err)
		if err != nil {
			return
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("metrics", false, "write fetch metrics to stderr when done")
}
