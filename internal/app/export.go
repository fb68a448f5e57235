package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/whichshell/internal/syntax"
)

var exportCmd = &cobra.Command{
	Use:   "export KEY=VALUE...",
	Short: "Print variable exports in the syntax of the detected shell",
	Example: `  eval "$(whichshell export EDITOR=vim PAGER=less)"
  whichshell export GOFLAGS=-mod=mod | source   # fish`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	type pair struct{ key, value string }
	pairs := make([]pair, 0, len(args))
	for _, arg := range args {
		key, value, err := syntax.ParseAssignment(arg)
		if err != nil {
			return &usageError{err}
		}
		pairs = append(pairs, pair{key, value})
	}

	res, err := current.detect(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range pairs {
		line, err := syntax.Export(res.Shell.Name, p.key, p.value)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, line)
	}
	current.log.Debug().Str("shell", res.Shell.Name).Int("count", len(pairs)).Msg("rendered exports")
	return nil
}
