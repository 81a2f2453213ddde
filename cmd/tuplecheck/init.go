package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/tuplecheck/internal/config"
)

// InitCommand represents the init command
type InitCommand struct {
	force      bool
	configPath string
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{
		force:      false,
		configPath: ".tuplecheck.toml",
	}
}

// CreateCobraCommand creates the cobra command for configuration initialization
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize tuplecheck configuration file",
		Long: `Initialize a tuplecheck configuration file in the current directory.

Creates a .tuplecheck.toml file with all configuration options and comments
explaining each setting. The same settings can also live in pyproject.toml
under [tool.tuplecheck].

Examples:
  # Create .tuplecheck.toml in current directory
  tuplecheck init

  # Create config file with custom name
  tuplecheck init --config myconfig.toml

  # Overwrite existing configuration file
  tuplecheck init --force`,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&i.configPath, "config", "c", ".tuplecheck.toml", "Configuration file path")

	return cmd
}

// runInit executes the init command
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	configPath, err := filepath.Abs(i.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !i.force {
		return fmt.Errorf("configuration file already exists: %s\nUse --force to overwrite", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(configPath, []byte(config.DefaultConfigTOML), 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", configPath)
	return nil
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
