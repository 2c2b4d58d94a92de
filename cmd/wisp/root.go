package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"wisp/internal/config"
	"wisp/internal/observability"
	"wisp/pkg/resource"
	stdnet "wisp/std/net"
)

type configKey struct{}

func newRootCmd() *cobra.Command {
	var cfgFile string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "wisp",
		Short:         "A small web document engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			if verbose {
				cfg.LoggerCfg.Level = "debug"
			}
			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("configuration loaded", zap.String("config_file", cfgFile))
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./wisp.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(
		newOpenCmd(),
		newRenderCmd(),
		newDumpCmd(),
		newJSCmd(),
	)
	return rootCmd
}

// loadConfig layers defaults, the config file and WISP_ environment
// variables. A missing default config file is not an error.
func loadConfig(cfgFile string) (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)
	config.BindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("wisp")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return config.NewConfigFromViper(v)
}

func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config, log *zap.Logger) resource.Fetcher {
	return resource.NewFetcher(stdnet.NewClient(cfg.Network().Timeout), cfg.Network().UserAgent, log)
}

// normalizeArg turns a command line URL or path into a URL.
func normalizeArg(arg string) string {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return resource.NormalizeFileURL(wd, arg)
}
