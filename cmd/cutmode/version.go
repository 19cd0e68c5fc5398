package main

import (
	"fmt"

	"github.com/cnckit/cutmode"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cutmode",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cutmode version %s\n", cutmode.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
