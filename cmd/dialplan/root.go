package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dialplan",
	Short: "dialplan is a config-driven IVR call-flow server",
	Long: `dialplan interprets a declarative phone-tree configuration and answers
telephony webhooks with the next voice-response document: menus, business
hours gating, call forwarding and voicemail.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "config.ini", "Path of the IVR configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
