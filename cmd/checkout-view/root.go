package main

import (
	"github.com/spf13/cobra"
	"github.com/vitwit/cartcheckout/config"
	"github.com/vitwit/cartcheckout/types"
)

type rootOptions struct {
	cfgFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "checkout-view",
		Short:         "Render cart checkout progress from execution engine snapshots",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	cmd.AddCommand(newRenderCmd(opts), newServeCmd(opts))
	return cmd
}

func (o *rootOptions) load() (*types.CheckoutConfig, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}
