package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/lintpost/internal/config"
)

var (
	flagConfigForce    bool
	flagConfigDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lintpost configuration",
	Long: `Manage the YAML file holding default report settings. Values are
layered as defaults, then the file, then LINTPOST_* and GITHUB_*
environment variables, then report flags.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.OutOrStdout(), flagConfigForce)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: `Change one setting in the config file. Lists are comma-separated and
per-severity emoji use keys like issueEmoji.warning.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setConfig(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if !flagConfigDefaults {
			var err error
			if cfg, err = config.Load(nil); err != nil {
				return err
			}
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// initConfig writes the defaults unless a file exists and force is unset.
func initConfig(w io.Writer, force bool) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	switch {
	case err == nil && !force:
		fmt.Fprintf(os.Stderr, "Config file already exists at %s (use --force to overwrite)\n", path)
		return nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if err := config.Save(config.Default()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(w, "Wrote default settings to %s\n", path)
	return nil
}

// setConfig applies key=value to the stored file. The file is rewritten only
// when the result still validates.
func setConfig(w io.Writer, key, value string) error {
	cfg, err := config.LoadFile()
	if err != nil {
		// Unreadable or missing: start over from defaults.
		cfg = config.Default()
	}

	if err := config.SetField(&cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s=%q: %w", key, value, err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(w, "%s = %s\n", key, value)
	return nil
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
	configShowCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print built-in defaults, ignoring file and environment")

	configCmd.AddCommand(configInitCmd, configSetCmd, configShowCmd, configPathCmd)
}
