package app

import (
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/whichshell/internal/proc"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Dump the process table as YAML for later replay with --snapshot",
	Long: `Dump the process table as YAML for later replay with --snapshot.
With --pid only the ancestry of that process is written, which is usually
enough to reproduce a detection.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		snap, err := current.snapshotter()
		if err != nil {
			return err
		}
		procs, err := snap.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		if flagPID > 0 {
			procs, err = proc.Ancestry(procs, flagPID)
			if err != nil {
				return err
			}
		}
		current.log.Info().Int("processes", len(procs)).Msg("snapshot taken")
		return proc.WriteSnapshot(cmd.OutOrStdout(), procs)
	},
}
