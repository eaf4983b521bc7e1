package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/notifygen/config"
)

var (
	configFormat string
	configForce  bool
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create notifygen configuration",
	Long: `Configuration is merged from, in increasing precedence:

1. Built-in defaults
2. notifygen.toml (searched upward from --dir, or --config)
3. NOTIFYGEN_<SECTION>_<KEY> environment variables`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a notifygen.toml with default values",
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing notifygen.toml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	dir, path, err := configLocation(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir, path)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg, configFormat)
	if err != nil {
		return err
	}
	if source := sourceOf(dir, path); source != "" && configFormat != "json" {
		fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", source)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, _, err := configLocation(cmd)
	if err != nil {
		return err
	}
	path, err := config.WriteDefault(dir, configForce)
	if err != nil {
		return err
	}
	pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln("Wrote %s", path)
	return nil
}

func sourceOf(dir, path string) string {
	if path != "" {
		return path
	}
	return config.FindProjectConfig(dir)
}
