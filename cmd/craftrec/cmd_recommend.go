package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rushteam/craftrec/recommend"
)

type recommendOptions struct {
	userID    string
	city      string
	state     string
	query     string
	similarTo int64
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run a single recommendation and print the JSON response",
		Example: `  craftrec recommend --city jaipur
  craftrec recommend --user u1 -q pottery
  craftrec recommend --similar-to 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &recommend.Request{
				UserID: opts.userID,
				City:   opts.city,
				State:  opts.state,
				Query:  opts.query,
			}
			if cmd.Flags().Changed("similar-to") {
				id := opts.similarTo
				req.SimilarTo = &id
			}

			a, err := newApp(cmd.Context(), root.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := json.MarshalIndent(a.rec.Recommend(cmd.Context(), req), "", "  ")
			if err != nil {
				return fmt.Errorf("recommend: encode: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.userID, "user", "", "user id for personalized recommendations")
	cmd.Flags().StringVar(&opts.city, "city", "", "city, fuzzy matched against the catalog")
	cmd.Flags().StringVar(&opts.state, "state", "", "state, fuzzy matched against the catalog")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "free-text search")
	cmd.Flags().Int64Var(&opts.similarTo, "similar-to", 0, "product id to find similar items for")
	return cmd
}
