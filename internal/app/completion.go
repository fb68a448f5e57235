package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/whichshell/internal/completion"
	"github.com/pranshuparmar/whichshell/internal/proc"
	"github.com/pranshuparmar/whichshell/internal/shell"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   "completion bash|zsh|fish|powershell",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for whichshell.

  Bash:        source <(whichshell completion bash)
  Zsh:         whichshell completion zsh > "${fpath[1]}/_whichshell"
  Fish:        whichshell completion fish | source
  PowerShell:  whichshell completion powershell | Out-String | Invoke-Expression`,
	Args:      usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
	ValidArgs: completionShells,
	// Completion scripts never need the config or a logger.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return &usageError{fmt.Errorf("unsupported shell %q", args[0])}
	},
}

func registerFlagCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("pid", completePIDs)
	_ = cmd.RegisterFlagCompletionFunc("provider", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completion.Names(proc.ProviderNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("shell", completeShellNames)
	_ = cmd.RegisterFlagCompletionFunc("not-shell", completeShellNames)
	_ = cmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completion.Names([]string{"debug", "info", "warn", "error"}, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// completePIDs offers running shells first, since those are the pids a user
// usually wants to start from, then every other pid.
func completePIDs(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var snap proc.Snapshotter
	var err error
	if flagSnapshot != "" {
		snap, err = proc.LoadSnapshotFile(flagSnapshot)
	} else {
		snap, err = proc.NewSnapshotter(flagProvider, zerolog.Nop())
	}
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	procs, err := snap.Snapshot(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	shells := completion.ShellPIDs(procs, shell.DefaultMatcher())
	seen := make(map[string]bool, len(shells))
	for _, s := range shells {
		pid, _, _ := strings.Cut(s, "\t")
		seen[pid] = true
	}
	out := shells
	for _, pid := range completion.PIDs(procs, os.Getpid(), os.Getppid()) {
		if !seen[pid] {
			out = append(out, pid)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
}

func completeShellNames(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completion.Names(shell.DefaultShells, toComplete), cobra.ShellCompDirectiveNoFileComp
}
