package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	dateArg string
)

var rootCmd = &cobra.Command{
	Use:   "dayboard",
	Short: "Day-planning board for dispatching field crews",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVarP(&dateArg, "date", "d", "", "schedule date (YYYY-MM-DD), defaults to today")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
