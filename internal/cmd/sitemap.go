package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print sitemap.xml",
	Long: `Render the sitemap from the configured store, or fetch it from a
running server with --server.

Examples:
  parksitectl sitemap > public/sitemap.xml
  parksitectl sitemap --server http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runSitemap,
}

func init() {
	rootCmd.AddCommand(sitemapCmd)
	sitemapCmd.Flags().StringVar(&serverURL, "server", "", "fetch from a running server instead of the local store")
}

func runSitemap(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	var (
		body []byte
		err  error
	)
	if serverURL != "" {
		client, cerr := newSDKClient()
		if cerr != nil {
			return cerr
		}
		body, err = client.Sitemap(ctx)
	} else {
		a, closeStore, oerr := openApp(ctx)
		if oerr != nil {
			return oerr
		}
		defer closeStore()
		body, err = a.Sitemap.Render(ctx)
	}
	if err != nil {
		return fmt.Errorf("sitemap: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(body)
	return err
}
