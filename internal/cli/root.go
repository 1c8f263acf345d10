package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "triply",
	Short: "Triply travel journal client",
	Long:  `Command-line client for the Triply travel journal API.`,
}

func init() {
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(tripCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(serverCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
