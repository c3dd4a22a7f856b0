package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ozkatz/cloudbytes/pkg/format"
)

var jsonCmd = &cobra.Command{
	Use:     "json",
	Short:   "Decode a remote JSON array (or JSON lines) object and print one record per line",
	Example: "cb json https://example.com/records.json",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := openObject(cmd.Context(), args[0])
		records, err := format.ReadJSON(r)
		if err != nil {
			die("could not decode JSON: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		for _, record := range records {
			if err := enc.Encode(record); err != nil {
				die("could not write record: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(jsonCmd)
}
