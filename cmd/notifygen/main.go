package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/notifygen/cmd/notifygen/commands"
	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "notifygen",
	Short: "notifygen - change-notification code generator",
	Long: `notifygen - generates change-notification accessors for Go structs.

Types marked with // +notify:observable that embed notify.Extension get
getters, guarded setters, PropertyChanged/PropertyChanging events, dependent
notifications, command refreshes and optional notification suppression,
written to zz_generated.notify.<type>.go next to the declaration.

Available commands:
  generate - Generate notification code for packages
  check    - Verify generated code is up to date (for CI)
  watch    - Regenerate whenever sources change
  snapshot - Print the scanned declarations as YAML
  config   - Show or create notifygen.toml
  version  - Show version information

Examples:
  notifygen generate ./...        # Generate for every package
  notifygen check ./...           # Fail if output is stale
  notifygen watch -v ./internal/...
  notifygen generate --snapshot types.yaml --dry-run`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (-v, -vv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringP("dir", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default: nearest notifygen.toml)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.SnapshotCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
