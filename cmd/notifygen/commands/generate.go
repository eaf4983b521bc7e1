package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/notifygen/writer"
)

var (
	generateSnapshot string
	generateDryRun   bool
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate [packages...]",
	Short: "Generate change-notification code",
	Long: `Generate change-notification members for every type marked with
// +notify:observable in the given packages (default ./...).

Each observable type gets one file, zz_generated.notify.<type>.go, in its
package directory. Files for types that are no longer observable are
removed. Diagnostics are printed to stderr; errors fail the command.

Examples:
  notifygen generate                        # All packages below the current directory
  notifygen generate ./internal/model       # One package
  notifygen generate --dry-run ./...        # Print generated code instead of writing
  notifygen generate --snapshot types.yaml  # Generate from a YAML snapshot`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVar(&generateSnapshot, "snapshot", "", "Read declarations from a YAML snapshot instead of loading packages (- for stdin)")
	GenerateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print generated code to stdout instead of writing files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	p, err := s.pass(cmd.Context(), generateSnapshot, args)
	if err != nil {
		return err
	}
	diagErr := s.printDiagnostics(cmd.ErrOrStderr(), p.result.Diagnostics)

	if generateDryRun || p.dirs == nil {
		for _, u := range p.result.Units {
			fmt.Fprintf(cmd.OutOrStdout(), "// %s: %s\n%s\n", u.PackagePath, u.FileName, u.Source)
		}
		return diagErr
	}

	changes, err := s.writer.Write(p.result.Units, p.dirs)
	if err != nil {
		return err
	}
	summary(cmd.ErrOrStderr(), p.result.Stats, len(writer.Pending(changes)))
	return diagErr
}
