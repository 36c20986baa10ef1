package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MuddySheep/Shamirs-Leak/internal/config"
	"github.com/MuddySheep/Shamirs-Leak/internal/output"
	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and initialize shamirleak configuration.`,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.shamirleak/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.

Example:
  shamirleak config init
  shamirleak config init --force`,
	RunE: runConfigInit,
}

// configShowCmd shows the current configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current configuration settings.

Example:
  shamirleak config show
  shamirleak config show -o json`,
	RunE: runConfigShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return recoveryerr.WithSuggestion(
			recoveryerr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return recoveryerr.Wrap(err, "creating config directory")
	}

	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home

	if err := config.Save(defaultCfg, configPath); err != nil {
		return recoveryerr.Wrap(err, "writing config file")
	}

	output.Successf("configuration initialized at %s", configPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	format := output.FormatText
	if formatter != nil {
		format = formatter.Format()
	}

	if format == output.FormatJSON {
		return formatter.Print(cfg)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "home:   %s\n", cfg.Home)
	fmt.Fprintf(w, "recovery:\n")
	fmt.Fprintf(w, "  threads:              %d\n", cfg.Recovery.Threads)
	fmt.Fprintf(w, "  prng_reuse_period:    %d\n", cfg.Recovery.PRNGReusePeriod)
	fmt.Fprintf(w, "  prng_mask:            0x%02x\n", cfg.Recovery.PRNGMask)
	fmt.Fprintf(w, "  index_collision_prob: %g\n", cfg.Recovery.IndexCollisionProb)
	fmt.Fprintf(w, "  max_depth:            %d\n", cfg.Recovery.MaxDepth)
	fmt.Fprintf(w, "  rate_per_second:      %g\n", cfg.Recovery.RatePerSecond)
	fmt.Fprintf(w, "  attempt_log_path:     %s\n", cfg.Recovery.AttemptLogPath)
	fmt.Fprintf(w, "  encrypt_attempt_log:  %t\n", cfg.Recovery.EncryptAttemptLog)
	fmt.Fprintf(w, "output:\n")
	fmt.Fprintf(w, "  default_format: %s\n", cfg.Output.DefaultFormat)
	fmt.Fprintf(w, "  verbose:        %t\n", cfg.Output.Verbose)
	fmt.Fprintf(w, "logging:\n")
	fmt.Fprintf(w, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  file:  %s\n", cfg.Logging.File)
	return nil
}
