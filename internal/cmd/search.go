package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/parksite/internal/version"
	parksite "github.com/kailas-cloud/parksite/pkg/sdk"
)

var (
	serverURL  string
	jsonOutput bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run the aggregate site search",
	Long: `Search the static sections, FAQs, blog posts and menu the way the
site's search box does. Without --server the search runs in-process
against the configured store.

Examples:
  parksitectl search cumpleaños
  parksitectl search --json "fiesta infantil"
  parksitectl search --server http://localhost:8080 malteada`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&serverURL, "server", "", "query a running server instead of the local store")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	q := strings.Join(args, " ")
	ctx := commandContext(cmd)

	var (
		results []parksite.SearchResult
		err     error
	)
	if serverURL != "" {
		results, err = searchRemote(ctx, q)
	} else {
		results, err = searchLocal(ctx, q)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return printResults(out, results)
}

func searchRemote(ctx context.Context, q string) ([]parksite.SearchResult, error) {
	client, err := newSDKClient()
	if err != nil {
		return nil, err
	}
	results, err := client.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", serverURL, err)
	}
	return results, nil
}

func searchLocal(ctx context.Context, q string) ([]parksite.SearchResult, error) {
	a, closeStore, err := openApp(ctx)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	found := a.Search.Search(ctx, q)
	results := make([]parksite.SearchResult, len(found))
	for i := range found {
		r := &found[i]
		results[i] = parksite.SearchResult{
			Kind:        parksite.Kind(r.Kind()),
			Title:       r.Title(),
			Description: r.Description(),
			Href:        r.Href(),
			SectionID:   r.SectionID(),
		}
	}
	return results, nil
}

func newSDKClient() (*parksite.Client, error) {
	return parksite.New(serverURL, parksite.WithUserAgent("parksitectl/"+version.Version))
}

func printResults(w io.Writer, results []parksite.SearchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "no results")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KIND\tTITLE\tHREF")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Kind, r.Title, r.Href)
	}
	return tw.Flush()
}
