package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dialplan/dialplan"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the IVR configuration for consistency",
	Long: `Dry-tests the configuration: constructs every declared section (welcome,
menu, menu options, actions and hours) and reports the first schema
violation.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		quiet, _ := cmd.Flags().GetBool("quiet")

		if err := runValidate(configPath, quiet); err != nil {
			if !quiet {
				p := termenv.ColorProfile()
				fmt.Println(termenv.String(fmt.Sprintf("Validation failed: %v", err)).
					Foreground(p.Color("#f87171")))
			}
			os.Exit(1)
		}

		if !quiet {
			p := termenv.ColorProfile()
			fmt.Println(termenv.String("Configuration looks correct.").
				Foreground(p.Color("#22c55e")))
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("quiet", "q", false, "Quiet (no output)")
}

func runValidate(configPath string, quiet bool) error {
	app, err := dialplan.New(configPath)
	if err != nil {
		return err
	}

	var report func(string)
	if !quiet {
		report = func(sectionName string) {
			fmt.Printf("Testing [%s] section\n", sectionName)
		}
	}

	return app.Validate(report)
}
