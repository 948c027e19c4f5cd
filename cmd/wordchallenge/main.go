package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/japaniel/wordchallenge/pkg/config"
	"github.com/japaniel/wordchallenge/pkg/logging"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app carries the resolved configuration and logger shared by commands.
type app struct {
	cfg    config.Config
	logger *zap.Logger

	dbPath      string
	wordURL     string
	validateURL string
	logFile     string
	timeout     time.Duration
	verbose     bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "wordchallenge",
		Short: "Practice vocabulary by writing sentences and getting them scored",
		Long: `wordchallenge fetches a practice word, lets you write a sentence with it,
sends the sentence to a scoring service and keeps a local history of attempts.

Run without arguments to start the interactive practice screen.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPractice(cmd.Context(), false)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.dbPath, "db", "", "Path to SQLite database (env WORDCHALLENGE_DB)")
	pf.StringVar(&a.wordURL, "word-url", "", "Word service endpoint (env WORDCHALLENGE_WORD_URL)")
	pf.StringVar(&a.validateURL, "validate-url", "", "Sentence validation endpoint (env WORDCHALLENGE_VALIDATE_URL)")
	pf.DurationVar(&a.timeout, "timeout", 0, "HTTP request timeout, 0 disables (env WORDCHALLENGE_TIMEOUT)")
	pf.StringVar(&a.logFile, "log-file", "", "Log file used while the practice screen is open (env WORDCHALLENGE_LOG_FILE)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newPracticeCmd(a), newHistoryCmd(a), newStatsCmd(a))
	return root
}

// setup resolves configuration from the environment, lets explicitly set
// flags override it and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = a.dbPath
	}
	if flags.Changed("word-url") {
		cfg.WordURL = a.wordURL
	}
	if flags.Changed("validate-url") {
		cfg.ValidateURL = a.validateURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	opts := logging.Options{Verbose: cfg.Verbose}
	if isPractice(cmd) {
		opts.File = cfg.LogFile
	}
	a.logger, err = logging.New(opts)
	return err
}

func isPractice(cmd *cobra.Command) bool {
	return cmd.Name() == "practice" || !cmd.HasParent()
}
