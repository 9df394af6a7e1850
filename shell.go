package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:       "init <bash|zsh|fish>",
	Short:     "Print the shell wrapper that cds into jump results",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	Long: `Print a shell function named f that runs the binary, cds into the
directory it prints and records the visit. Add one of these to your shell
startup file:

  eval "$(f init bash)"
  eval "$(f init zsh)"
  f init fish | source`,
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := shellInit(args[0], passthroughCommands(rootCmd))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), script)
		return nil
	},
}

const posixInit = `f() {
  case "$1" in
    ""|-*|%s)
      command f "$@"
      return
      ;;
  esac
  local dir
  dir="$(command f "$@")" || return
  if [ -n "$dir" ] && [ -d "$dir" ]; then
    cd -- "$dir" && command f boost "$dir"
  fi
}
`

const fishInit = `function f
    switch "$argv[1]"
        case '' '-*' %s
            command f $argv
            return
    end
    set -l dir (command f $argv); or return
    if test -n "$dir"; and test -d "$dir"
        cd $dir; and command f boost $dir
    end
end
`

// shellInit renders the wrapper for shell. Subcommands in passthrough run
// untouched; anything else is a jump whose output is cd'd into.
func shellInit(shell string, passthrough []string) (string, error) {
	switch shell {
	case "bash", "zsh":
		return fmt.Sprintf(posixInit, strings.Join(passthrough, "|")), nil
	case "fish":
		return fmt.Sprintf(fishInit, strings.Join(passthrough, " ")), nil
	default:
		return "", fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish)", shell)
	}
}

// passthroughCommands lists subcommands whose stdout is not a directory to
// enter. top and back print one, so the wrapper treats them like jumps.
func passthroughCommands(root *cobra.Command) []string {
	names := []string{"help", "completion"}
	for _, c := range root.Commands() {
		switch c.Name() {
		case "top", "back", "help", "completion":
			continue
		}
		names = append(names, c.Name())
		names = append(names, c.Aliases...)
	}
	sort.Strings(names)
	return names
}
