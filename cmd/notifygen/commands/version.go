package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/notifygen/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show notifygen version information",
	Long:  `Display version, build time, commit hash, and platform information for the notifygen binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		yamlOutput, _ := cmd.Flags().GetBool("yaml")

		info := version.Get()
		out := cmd.OutOrStdout()

		switch {
		case jsonOutput:
			output, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, string(output))
		case yamlOutput:
			output, err := yaml.Marshal(info)
			if err != nil {
				return fmt.Errorf("failed to format YAML: %w", err)
			}
			fmt.Fprint(out, string(output))
		default:
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		}
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
	VersionCmd.Flags().Bool("yaml", false, "Output version info as YAML")
}
