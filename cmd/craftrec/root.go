package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "craftrec",
		Short:         "Hybrid recommender for a handicraft catalog",
		Long:          "craftrec serves product recommendations over HTTP.\nIt combines similar-item, personalized, location and popularity strategies over an in-memory catalog snapshot.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML config file (default: config.yaml if present)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRecommendCmd(opts),
	)
	return cmd
}
