package cmd

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ozkatz/cloudbytes/pkg/httpserver"
)

var httpCmd = &cobra.Command{
	Use:     "http",
	Short:   "Serve remote objects under a prefix over HTTP (with Range support)",
	Example: "cb http s3://example-bucket/path",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bindAddress, err := cmd.Flags().GetString("listen")
		if err != nil {
			die("Could not parse command flag listen: %v\n", err)
		}
		listener, err := net.Listen("tcp", bindAddress)
		if err != nil {
			die("Failed to bind port: %v\n", err)
		}
		fmt.Printf("HTTP server listening on %s\n", listener.Addr().String())
		err = http.Serve(listener, httpserver.NewHandler(fetcher, args[0]))
		if err != nil {
			slog.Error("Error running HTTP server", "error", err)
		}
	},
}

func init() {
	httpCmd.Flags().StringP("listen", "l", "127.0.0.1:0", "address to listen on")
	rootCmd.AddCommand(httpCmd)
}
