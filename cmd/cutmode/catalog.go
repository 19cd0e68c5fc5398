package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cnckit/cutmode/pkg/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Dump the embedded parameter catalog",
	Long:  `Prints every catalog entry with its speed, feed and depth ranges.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tSPEED (m/min)\tFEED\tDEPTH (mm)")
		cat.Walk(func(path []string, entry catalog.Entry) {
			depth := "-"
			if entry.Depth != nil {
				depth = formatRange(*entry.Depth)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Join(path, "/"),
				formatRange(entry.Speed),
				formatRange(entry.Feed),
				depth,
			)
		})
		return w.Flush()
	},
}

func formatRange(r catalog.Range) string {
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
