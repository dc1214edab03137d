package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/wbedit/internal/paths"
)

// configFile holds the structure init writes to config.yaml when
// --data-dir pins the store location.
type configFile struct {
	DataDir  string `yaml:"data_dir,omitempty"`
	LogLevel string `yaml:"log_level"`
	Color    string `yaml:"color"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the revision store",
		Long:  "Create the configuration and data directories, then initialize the revision store.",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	if a.flags.dataDir != "" {
		configDir, err := paths.ResolveConfigDir(a.flags.configDir)
		if err != nil {
			return sysError("resolve config dir: %w", err)
		}
		dataDir, err := filepath.Abs(a.flags.dataDir)
		if err != nil {
			return sysError("resolve data dir: %w", err)
		}
		if err := a.pinDataDir(filepath.Join(configDir, paths.ConfigFileName), dataDir); err != nil {
			return sysError("write config: %w", err)
		}
	}

	s, err := a.attachStore()
	if err != nil {
		return err
	}
	if err := s.Detach(); err != nil {
		return sysError("finalize store: %w", err)
	}

	dataDir, _ := a.dataDir()
	fmt.Fprintf(cmd.OutOrStdout(), "revision store initialized in %s\n", dataDir)
	return nil
}

// pinDataDir records dataDir in the config file unless the file already
// names one.
func (a *app) pinDataDir(path, dataDir string) error {
	if a.config.GetString(cfgKeyDataDir) != "" {
		return nil
	}
	cfg := configFile{
		DataDir:  dataDir,
		LogLevel: a.config.GetString(cfgKeyLogLevel),
		Color:    a.config.GetString(cfgKeyColor),
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	a.config.Set(cfgKeyDataDir, dataDir)
	return nil
}
