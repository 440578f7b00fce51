package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the linkedin-engine application
var rootCmd = &cobra.Command{
	Use:   "linkedin-engine",
	Short: "Generates daily LinkedIn post drafts from feeds and newsletters",
	Long: `linkedin-engine fetches articles from RSS feeds and Gmail newsletters,
scores and categorises them with an LLM, generates LinkedIn post drafts in
rotating personas and delivers a daily digest to Google Docs and email.

It is designed to run once per day from an external scheduler such as cron
or GitHub Actions.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "linkedin-engine version %s\n" .Version}}`)

	// If no subcommand is provided, run the pipeline by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "run")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newTestEmailCmd())
	rootCmd.AddCommand(newVersionCmd())
}
