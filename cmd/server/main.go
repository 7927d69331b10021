// Command server runs the wellbeing chatbot over HTTP and WebSocket, and
// offers a few maintenance subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wellbeing",
	Short: "Wellbeing chatbot server",
	Long: `A supportive chatbot that routes messages through crisis detection,
scripted exercises and a knowledge base before asking a language model.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, askCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
