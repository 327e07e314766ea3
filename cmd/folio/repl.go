package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"termfolio/internal/logging"
	"termfolio/internal/terminal"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var replNoOpen bool

// replCmd runs the terminal in line mode
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run the terminal in line mode",
	Long: `Runs the portfolio terminal with a plain line editor instead of the
full-screen desktop. Arrow keys recall history; Ctrl+D quits.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().BoolVar(&replNoOpen, "no-open", false, "print the hire mail link instead of opening it")
}

// completer offers command names for the first word.
func completer() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	seen := make(map[string]bool)
	for _, c := range terminal.Commands {
		name := strings.Fields(c.Usage)[0]
		if seen[name] {
			continue
		}
		seen[name] = true
		items = append(items, readline.PcItem(name))
	}
	items = append(items, readline.PcItem("terminal"), readline.PcItem("help"))
	return readline.NewPrefixCompleter(items...)
}

func runREPL(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	conv, err := newConversation(cmd.Context(), p)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		AutoComplete:           completer(),
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	out := newPrinter(rl.Stdout(), false)
	mailer := terminal.MailerFunc(func(m terminal.Mail) {
		out.mail(m)
		if replNoOpen {
			return
		}
		if err := openURL(m.URL()); err != nil {
			logging.SessionDebug("could not open mail client: %v", err)
		}
	})
	sess := terminal.NewSession(newInterpreter(p), terminal.WithMailer(mailer))
	defer func() {
		sess.Close()
		sess.Wait()
	}()

	out.block(sess.Welcome())
	for {
		rl.SetPrompt(out.prompt.Sprint(sess.Prompt()) + " ")
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		before := len(sess.State().History)
		resp := sess.Submit(line)
		if len(sess.State().History) > before {
			rl.SaveHistory(line)
		}

		if resp.Clear {
			readline.ClearScreen(rl.Stdout())
		}
		out.response(resp)
		if resp.ToggleVisibility {
			out.tones[terminal.ToneNotice].Fprintln(rl.Stdout(), "(the terminal window stays open in line mode)")
		}
		chat(cmd.Context(), conv, resp, out)
	}
}
