package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"termfolio/internal/ai"
	"termfolio/internal/config"
	"termfolio/internal/logging"
	"termfolio/internal/profile"
	"termfolio/internal/terminal"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded in PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Interactive terminal portfolio",
	Long: `folio presents a portfolio as a small Unix-like terminal: a virtual
filesystem of about, skills, social and project files, a handful of
commands to browse it, an AI chat mode and a hire-me wizard.

Run without arguments to open the full-screen desktop.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}
		if verbose {
			cfg.Logging.DebugMode = true
		}

		// The desktop owns the screen; line-mode commands log to stderr
		// when asked to, the server always does.
		fallback := ""
		if cmd != cmd.Root() && (verbose || cmd.Name() == "serve") {
			fallback = "stderr"
		}
		if err := logging.Initialize(cfg.Logging.ToLogging(fallback)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runDesk,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(replCmd, execCmd, serveCmd, exportCmd, profileCmd, configCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// loadProfile returns the configured profile, or the built-in one.
func loadProfile() (*profile.Profile, error) {
	p, err := profile.LoadOrDefault(cfg.Profile.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, nil
}

// newInterpreter builds an interpreter for p from the terminal config.
func newInterpreter(p *profile.Profile) *terminal.Interpreter {
	opts := terminal.Options{
		User:      cfg.Terminal.User,
		Host:      cfg.Terminal.Host,
		HireDelay: cfg.GetHireDelay(),
	}
	if seed := cfg.Terminal.Seed; seed != 0 {
		opts.Picker = rand.New(rand.NewPCG(seed, seed))
	}
	return terminal.NewInterpreter(p, nil, opts)
}

// newConversation connects the configured AI backend.
func newConversation(ctx context.Context, p *profile.Profile) (*ai.Conversation, error) {
	client, err := ai.NewClient(ctx, ai.Settings{
		Backend:  cfg.AI.Backend,
		Endpoint: cfg.AI.Endpoint,
		Model:    cfg.AI.Model,
		APIKey:   cfg.AI.APIKey,
		Timeout:  cfg.GetAITimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return ai.NewConversation(client, p), nil
}
