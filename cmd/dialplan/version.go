package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dialplan/dialplan"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dialplan",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dialplan version %s\n", dialplan.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
