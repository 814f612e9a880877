package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/outline"
	"github.com/docsift/docsift/internal/pdfdoc"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file.pdf>",
	Short: "Print a document's inferred title and heading outline as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := pdfdoc.Open(args[0])
		if err != nil {
			return err
		}
		defer doc.Close()

		ol, err := outline.Extract(doc)
		if err != nil {
			return fmt.Errorf("extract outline: %w", err)
		}

		data, err := json.MarshalIndent(ol, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
