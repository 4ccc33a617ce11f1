package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/lineup-cli/internal/lineup"
	"github.com/sells-group/lineup-cli/internal/model"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List supported lineup sources and columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapters := lineup.DefaultRegistry().Adapters()

		rows := make([][]string, 0, len(adapters))
		for _, adapter := range adapters {
			fallback := "no"
			if adapter.FallbackStyles() {
				fallback = "yes"
			}
			rows = append(rows, []string{adapter.ID(), fallback})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderTable([]string{"Source", "Fallback styles"}, rows))
		fmt.Fprintf(out, "Columns: %s\n", strings.Join(model.Columns(), ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
