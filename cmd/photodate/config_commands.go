package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"photodate/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the photodate configuration",
	}

	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			cfg, _, _, err := config.Load(target)
			if err != nil {
				return fmt.Errorf("load sample config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			renderSettings(out, cfg)
			fmt.Fprintln(out, "Next: `photodate deps` checks exiftool, `photodate <archive-root>` shows a dry run.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and show the effective settings",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			flagPath, _ := cmd.Flags().GetString("config")
			cfg, path, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Config path: %s\n", path)
			} else {
				fmt.Fprintf(out, "Config path: %s (not found, defaults used)\n", path)
			}
			renderSettings(out, cfg)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func configTarget(flagValue string) (string, error) {
	target := strings.TrimSpace(flagValue)
	if target == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return expanded, nil
}

// renderSettings lists the settings a run actually uses, after defaults and
// normalization.
func renderSettings(out io.Writer, cfg *config.Config) {
	exiftool := cfg.ExiftoolBinary() + " (optional, timestamps only without it)"
	if cfg.Exiftool.Required {
		exiftool = cfg.ExiftoolBinary() + " (required)"
	}
	journal := "disabled"
	if cfg.Journal.Enabled {
		journal = cfg.JournalPath()
	}
	retention := "off"
	if cfg.Logging.RetentionDays > 0 {
		retention = strconv.Itoa(cfg.Logging.RetentionDays) + " days"
	}
	rows := [][]string{
		{"State directory", cfg.Paths.StateDir},
		{"Log directory", cfg.Paths.LogDir},
		{"Journal", journal},
		{"exiftool", exiftool},
		{"Command timeout", cfg.CommandTimeout().String()},
		{"Shutdown timeout", cfg.ShutdownTimeout().String()},
		{"Restart budget", strconv.Itoa(cfg.Exiftool.MaxRestarts)},
		{"Keep time of day", yesNo(cfg.Apply.KeepTimeOfDay)},
		{"Report locale", cfg.ReportLanguage().String()},
		{"Logging", cfg.Logging.Level + ", " + cfg.Logging.Format},
		{"Log retention", retention},
	}
	fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))
}
