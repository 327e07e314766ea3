package main

import (
	"termfolio/internal/terminal"

	"github.com/spf13/cobra"
)

var execEcho bool

// execCmd runs command lines without an interactive terminal
var execCmd = &cobra.Command{
	Use:   "exec LINE...",
	Short: "Run command lines against a fresh session and print the output",
	Long: `Each argument is submitted as one line, in order, to a new session.
A hire mail link is printed right away instead of after the delay.

Example:
  folio exec "cd projects" ls "cat promptpilot.md"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().BoolVar(&execEcho, "echo", false, "print each line with its prompt")
}

func runExec(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	conv, err := newConversation(cmd.Context(), p)
	if err != nil {
		return err
	}

	out := newPrinter(cmd.OutOrStdout(), execEcho)
	sess := terminal.NewSession(newInterpreter(p))
	defer sess.Close()

	for _, line := range args {
		resp := sess.Submit(line)
		out.response(resp)
		if resp.Mail != nil {
			out.mail(*resp.Mail)
		}
		chat(cmd.Context(), conv, resp, out)
	}
	return nil
}
