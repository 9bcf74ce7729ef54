package cli

import (
	"context"
	"fmt"

	"board/internal/bootstrap"
	"board/internal/config"
	"board/internal/seed"

	"github.com/spf13/cobra"
)

func NewSeedCommand() *cobra.Command {
	var (
		opts    seed.Options
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo content",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to seed a production database")
			}

			ctx := context.Background()
			rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{
				ApplySchema: true,
				Cache:       true,
				Events:      publish,
			})
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			sum, err := seed.Seed(ctx, rt.DB, rt.Publisher, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d posts, %d comments, %d likes\n", sum.Posts, sum.Comments, sum.Likes)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.NumPosts, "posts", 50, "number of random posts")
	cmd.Flags().IntVar(&opts.MaxComments, "comments", 5, "maximum comments per random post")
	cmd.Flags().IntVar(&opts.MaxLikes, "likes", 10, "maximum likes per random post")
	cmd.Flags().BoolVar(&opts.ShouldClean, "clean", false, "delete all existing content first")
	cmd.Flags().StringVar(&opts.Fixtures, "fixtures", "", "YAML fixtures file to load")
	cmd.Flags().Int64Var(&opts.RandomSeed, "random-seed", 0, "seed for reproducible content (0 is random)")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish domain events for seeded content")
	return cmd
}
