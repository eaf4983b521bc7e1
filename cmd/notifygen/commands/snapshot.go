package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/loader"
)

var snapshotOutput string

// SnapshotCmd represents the snapshot command
var SnapshotCmd = &cobra.Command{
	Use:   "snapshot [packages...]",
	Short: "Print scanned declarations as YAML",
	Long: `Load packages and print every directive-carrying type as a YAML
snapshot. Snapshots can be edited and fed back with
"notifygen generate --snapshot", which is useful for reproducing
diagnostics without the original sources.

Examples:
  notifygen snapshot ./internal/model
  notifygen snapshot -o types.yaml ./...`,
	RunE: runSnapshot,
}

func init() {
	SnapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "", "Output file (default: stdout)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	loaded, err := loader.Load(cmd.Context(), s.loaderConfig(), args...)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if snapshotOutput != "" {
		f, err := os.Create(snapshotOutput)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", snapshotOutput)
		}
		defer f.Close()
		w = f
	}
	return host.Encode(w, loaded.Snapshot)
}
