package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/montrey/f/config"
	"github.com/montrey/f/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	// The config file may be the thing being fixed, so it is not loaded here.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Setup("warn", "text", cmd.ErrOrStderr())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolvedConfigPath()
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), resolvedConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configPathCmd)
}

func resolvedConfigPath() string {
	if configPath != "" {
		return config.ExpandHome(configPath)
	}
	return config.DefaultPath()
}
