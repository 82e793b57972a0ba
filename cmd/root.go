package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the miro-mcp application
var rootCmd = &cobra.Command{
	Use:   "miro-mcp",
	Short: "MCP server for Miro whiteboards",
	Long: `miro-mcp exposes the Miro REST API as Model Context Protocol (MCP) tools
so AI assistants can create and manage boards, sticky notes, shapes,
connectors, tags, groups, and board members.

Authentication uses a Miro access token supplied via the --access-token
flag or the MIRO_ACCESS_TOKEN environment variable.`,
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
	rootCmd.SetVersionTemplate(`{{printf "miro-mcp version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the miro-mcp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("miro-mcp version %s\n", version)
		},
	}
}
