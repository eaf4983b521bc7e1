package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/writer"
)

var checkDiff bool

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check [packages...]",
	Short: "Verify generated code is up to date",
	Long: `Run generation without writing and fail when any generated file would
be created, changed or removed, or when an error diagnostic is reported.

Examples:
  notifygen check ./...          # CI gate
  notifygen check --diff ./...   # Show what would change`,
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().BoolVar(&checkDiff, "diff", false, "Print a unified diff of pending changes")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	p, err := s.pass(cmd.Context(), "", args)
	if err != nil {
		return err
	}
	if err := s.printDiagnostics(cmd.ErrOrStderr(), p.result.Diagnostics); err != nil {
		return err
	}

	changes, err := s.writer.Plan(p.result.Units, p.dirs)
	if err != nil {
		return err
	}
	pending := writer.Pending(changes)
	if len(pending) == 0 {
		pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln("Generated code is up to date (%d unit(s))", p.result.Stats.Units)
		return nil
	}

	for _, c := range pending {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", c.Op, c.Path)
	}
	if checkDiff {
		diff, err := writer.Diff(pending, s.dir)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), diff)
	}
	return errors.WithHint(
		errors.Wrapf(errors.ErrOutOfDate, "%d generated file(s) out of date", len(pending)),
		"run notifygen generate")
}
