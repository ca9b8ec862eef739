package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load FAQs, posts and menu items from a YAML fixture",
	Long: `Load a YAML fixture into the configured content store. Records are
upserted by key, so running the same fixture twice leaves one copy.

Examples:
  parksitectl seed                          # uses database.seed_file
  parksitectl seed --file fixtures/menu.yaml`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "fixture file (default: database.seed_file)")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	path := seedFile
	if path == "" {
		path = cfg.Database.SeedFile
	}
	if path == "" {
		return fmt.Errorf("no fixture: pass --file or set database.seed_file")
	}

	ctx := commandContext(cmd)
	a, closeStore, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	sum, err := a.SeedFile(ctx, path)
	if err != nil {
		return err
	}
	logger.Debug("Seed applied", zap.String("file", path), zap.String("driver", cfg.Database.Driver))

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d faqs, %d posts, %d menu items\n",
		sum.Faqs, sum.Posts, sum.MenuItems)
	return err
}
