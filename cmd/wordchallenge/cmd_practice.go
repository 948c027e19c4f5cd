package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/japaniel/wordchallenge/pkg/db"
	"github.com/japaniel/wordchallenge/pkg/history"
	"github.com/japaniel/wordchallenge/pkg/practice"
	"github.com/japaniel/wordchallenge/pkg/tui"
	"github.com/japaniel/wordchallenge/pkg/usage"
	"github.com/japaniel/wordchallenge/pkg/wordapi"
)

func newPracticeCmd(a *app) *cobra.Command {
	var ephemeral bool
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Open the interactive practice screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPractice(cmd.Context(), ephemeral)
		},
	}
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "Keep history in memory only")
	return cmd
}

func (a *app) runPractice(ctx context.Context, ephemeral bool) error {
	var store history.Store
	if ephemeral {
		store = history.NewMemoryStore()
	} else {
		conn, err := db.Open(a.cfg.DBPath)
		if err != nil {
			return err
		}
		defer conn.Close()
		store = history.NewSQLiteStore(conn)
	}

	session := a.newSession(store)
	notifier := tui.NewChanNotifier(8)
	session.Notifier = notifier

	// The usage hint is optional; practice works without it.
	var checker tui.WordChecker
	if analyzer, err := usage.NewAnalyzer(); err != nil {
		a.logger.Warn("usage analyzer unavailable", zap.Error(err))
	} else {
		checker = analyzer
	}

	a.logger.Info("starting practice session",
		zap.String("session_id", session.ID),
		zap.String("word_url", a.cfg.WordURL),
		zap.String("validate_url", a.cfg.ValidateURL),
		zap.Bool("ephemeral", ephemeral))

	p := tea.NewProgram(tui.New(ctx, session, notifier.C(), checker), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run practice screen: %w", err)
	}
	return nil
}

func (a *app) newSession(store history.Store) *practice.Session {
	client := wordapi.New(a.cfg.WordURL, a.cfg.ValidateURL, a.cfg.Timeout)
	session := practice.NewSession(client, client, store)
	session.Logger = a.logger
	return session
}

// openHistory opens the configured database as a history store.
func (a *app) openHistory() (*history.SQLiteStore, *sql.DB, error) {
	conn, err := db.Open(a.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return history.NewSQLiteStore(conn), conn, nil
}
