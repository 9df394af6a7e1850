package main

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/montrey/f/config"
	"github.com/montrey/f/logger"
	"github.com/montrey/f/store"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "f [query...]",
	Short: "Instant directory jumper",
	Long: `f ranks indexed project directories by name and by how often and how
recently you visit them, and prints the best one for your shell to cd into.

Getting started:
  f add ~/code        # register a root to scan
  f index             # find projects under every root
  eval "$(f init zsh)" # install the shell wrapper

Then jump with "f <query>". Several matches open a picker; a single match
is printed straight away. Running "f" with no query re-indexes.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runIndex(cmd, false)
		}
		return runJump(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/f/config.yaml)")
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.SuggestionsMinimumDistance = 2

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(addCmd, removeCmd, rootsCmd)
	rootCmd.AddCommand(markCmd, unmarkCmd, marksCmd)
	rootCmd.AddCommand(boostCmd, pruneCmd, importCmd, topCmd)
	rootCmd.AddCommand(backCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and configures logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c
	logger.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	return nil
}

// openDB opens the state database named by the loaded configuration.
func openDB() (*sql.DB, error) {
	db, err := store.InitDB(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	return db, nil
}
