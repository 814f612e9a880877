package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Persona-driven document intelligence",
	Long: `docsift derives hierarchical outlines from unstructured PDFs using only
visual and typographic signals, splits each document into titled sections,
and ranks the sections by semantic relevance to a stated persona and task.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
