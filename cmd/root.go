package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the deskmcp application
var rootCmd = &cobra.Command{
	Use:   "deskmcp",
	Short: "MCP server exposing Gmail, Calendar and Tasks to AI agents",
	Long: `deskmcp is a Model Context Protocol (MCP) server that exposes a user's
Gmail mailbox, Google Calendar and Google Tasks as tools for AI assistants.

Run 'deskmcp auth' once to authorize Google access, then 'deskmcp serve'
to start the server.`,
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
	rootCmd.SetVersionTemplate(`{{printf "deskmcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
