package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/config"
)

var (
	askUser string
	askLang string
	askRaw  bool
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message through the chat engine and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.LogLevel = "error"

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		res := a.engine.Process(cmd.Context(), askUser, strings.Join(args, " "), askLang)
		out := cmd.OutOrStdout()
		if askRaw {
			fmt.Fprintln(out, res.Reply)
			return nil
		}
		fmt.Fprintf(out, "[%s]\n%s\n", res.Stage, render(res.Reply))
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askUser, "user", "u", "", "username to load mood and history for")
	askCmd.Flags().StringVarP(&askLang, "lang", "l", "", "reply language code")
	askCmd.Flags().BoolVar(&askRaw, "raw", false, "print the reply without markdown rendering")
}

// render formats markdown replies for the terminal, returning the input
// unchanged if rendering fails.
func render(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, " \n")
}
