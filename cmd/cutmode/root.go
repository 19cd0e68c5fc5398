package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cutmode",
	Short: "cutmode is a conversational cutting-parameter advisor",
	Long: `cutmode walks you through a machining scenario (material, operation,
tool) and recommends cutting parameters: speed, feed, spindle RPM, feed rate
and stepover.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
