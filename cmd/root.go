/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iofs"
	"github.com/gnames/gnsubsample/internal/iologger"
	app "github.com/gnames/gnsubsample/pkg"
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command when called without any subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnsubsample",
		Short:   "Subsample genomic sequences around a focal region",
		Long: `gnsubsample selects a bounded, representative subset of aligned
genomic sequences for phylogenetic analysis.

A run keeps a dense, stratified focal sample from the chosen region and
adds a sparse context sample from the rest of the world. Context sequences
are ranked by genetic similarity to the focal sample.

Commands:
  - run: full subsampling pipeline for a region
  - priorities: score candidate sequences against a reference set
  - sample: stand-alone grouped quota sampling
  - merge: merge FASTA files without duplicates

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNSUBSAMPLE_*)
  3. Config file (~/.config/gnsubsample/config.yaml)
  4. Built-in defaults

Without a subcommand the effective configuration is printed as YAML.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnsubsample version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnsubsample")

	rootCmd.AddCommand(
		getRunCmd(),
		getPrioritiesCmd(),
		getSampleCmd(),
		getMergeCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	gn.Info(
		"Configuration file: <em>%s</em>", config.ConfigFilePath(cfg.HomeDir),
	)
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNSUBSAMPLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Subsample configuration
	v.BindEnv("subsample.focal_group_by", "GNSUBSAMPLE_SUBSAMPLE_FOCAL_GROUP_BY")
	v.BindEnv("subsample.context_group_by", "GNSUBSAMPLE_SUBSAMPLE_CONTEXT_GROUP_BY")
	v.BindEnv("subsample.quota_global", "GNSUBSAMPLE_SUBSAMPLE_QUOTA_GLOBAL")
	v.BindEnv("subsample.quota_focal", "GNSUBSAMPLE_SUBSAMPLE_QUOTA_FOCAL")
	v.BindEnv("subsample.quota_context", "GNSUBSAMPLE_SUBSAMPLE_QUOTA_CONTEXT")
	v.BindEnv("subsample.global_token", "GNSUBSAMPLE_SUBSAMPLE_GLOBAL_TOKEN")
	v.BindEnv("subsample.id_column", "GNSUBSAMPLE_SUBSAMPLE_ID_COLUMN")

	// Priority configuration
	v.BindEnv("priority.method", "GNSUBSAMPLE_PRIORITY_METHOD")
	v.BindEnv("priority.chunk_size", "GNSUBSAMPLE_PRIORITY_CHUNK_SIZE")
	v.BindEnv("priority.max_comparisons", "GNSUBSAMPLE_PRIORITY_MAX_COMPARISONS")

	// Log configuration
	v.BindEnv("log.level", "GNSUBSAMPLE_LOG_LEVEL")
	v.BindEnv("log.format", "GNSUBSAMPLE_LOG_FORMAT")
	v.BindEnv("log.destination", "GNSUBSAMPLE_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNSUBSAMPLE_JOBS_NUMBER")

	v.AutomaticEnv()
}
