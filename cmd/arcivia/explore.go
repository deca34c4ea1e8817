package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/arcivia/arcivia-explore/pkg/explore"
	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/arcivia/arcivia-explore/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "List a category or search, page by page",
	Example: `  arcivia explore --category ancient --era Ancient --pages 2
  arcivia explore --search "tea bowl" --culture Japanese --sort newest
  arcivia explore --offline --ar-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := queryFlags(cmd)
		if err != nil {
			return err
		}
		pages, _ := cmd.Flags().GetInt("pages")
		asJSON, _ := cmd.Flags().GetBool("json")
		stats, _ := cmd.Flags().GetBool("stats")

		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := runExplore(ctx, a.source, opts.Query(), pages)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			err = writeJSON(out, exploreResponseFrom(st))
		} else {
			err = printState(out, st)
		}
		if err != nil {
			return err
		}

		if stats {
			if err := printTotals(out, prometheus.DefaultGatherer); err != nil {
				return err
			}
		}
		if st.Error != "" {
			return errors.New(st.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	addQueryFlags(exploreCmd)
	exploreCmd.Flags().Int("pages", 1, "Number of pages to load")
	exploreCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	exploreCmd.Flags().Bool("stats", false, "Print request, cache and load counters afterwards")
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("category", "all", "Category: all, trending, ancient, medieval, artifacts, monuments, museums")
	cmd.Flags().StringP("search", "s", "", "Free-text search")
	cmd.Flags().StringSlice("era", nil, "Era filter (Prehistoric, Ancient, Medieval, Renaissance, Modern)")
	cmd.Flags().StringSlice("culture", nil, "Culture filter; the first value drives the upstream query")
	cmd.Flags().Bool("ar-only", false, "Only highlighted (AR) items")
	cmd.Flags().String("sort", "popular", "Sort within a page: popular, newest, oldest")
}

func queryFlags(cmd *cobra.Command) (queryOptions, error) {
	var opts queryOptions
	var err error
	if opts.Category, err = cmd.Flags().GetString("category"); err != nil {
		return opts, err
	}
	if opts.Search, err = cmd.Flags().GetString("search"); err != nil {
		return opts, err
	}
	if opts.Era, err = cmd.Flags().GetStringSlice("era"); err != nil {
		return opts, err
	}
	if opts.Culture, err = cmd.Flags().GetStringSlice("culture"); err != nil {
		return opts, err
	}
	if opts.AROnly, err = cmd.Flags().GetBool("ar-only"); err != nil {
		return opts, err
	}
	if opts.Sort, err = cmd.Flags().GetString("sort"); err != nil {
		return opts, err
	}
	return opts, nil
}

// runExplore loads up to pages pages of q through a coordinator and returns
// the final state. Pagination stops early when there are no more pages or
// a load fails.
func runExplore(ctx context.Context, source explore.PageSource, q heritage.Query, pages int) (explore.State, error) {
	c := explore.NewCoordinator(source, q, explore.DefaultConfig())
	defer c.Close()

	if err := c.Wait(ctx); err != nil {
		return explore.State{}, err
	}

	for page := 2; page <= pages; page++ {
		if st := c.State(); st.Error != "" || !c.FetchNextPage() {
			break
		}
		if err := c.Wait(ctx); err != nil {
			return explore.State{}, err
		}
	}
	return c.State(), nil
}

// exploreResponse is the JSON shape of an explore state.
type exploreResponse struct {
	Query    heritage.Query  `json:"query"`
	Page     int             `json:"page"`
	HasMore  bool            `json:"hasMore"`
	Error    string          `json:"error,omitempty"`
	Items    []heritage.Item `json:"items"`
	Featured []heritage.Item `json:"featured"`
	Trending []heritage.Item `json:"trending"`
}

func exploreResponseFrom(st explore.State) exploreResponse {
	return exploreResponse{
		Query:    st.Query,
		Page:     st.Page,
		HasMore:  st.HasMore,
		Error:    st.Error,
		Items:    nonNil(st.Items),
		Featured: nonNil(st.Featured),
		Trending: nonNil(st.Trending),
	}
}

func nonNil(items []heritage.Item) []heritage.Item {
	if items == nil {
		return []heritage.Item{}
	}
	return items
}

func printState(w io.Writer, st explore.State) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCULTURE\tERA\tAR\tVIEWS")
	for _, it := range st.Items {
		ar := ""
		if it.IsAR {
			ar = "AR"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", it.ID, truncate(it.Title, 48), it.Culture, it.Era, ar, it.Views)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	more := "end of results"
	if st.HasMore {
		more = "more available"
	}
	fmt.Fprintf(w, "\n%d items, page %d, %s\n", len(st.Items), st.Page, more)

	if len(st.Featured) > 0 {
		fmt.Fprint(w, "Featured:")
		for _, it := range st.Featured {
			fmt.Fprintf(w, " %s (%s)", truncate(it.Title, 32), it.ID)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printTotals(w io.Writer, g prometheus.Gatherer) error {
	totals, err := metrics.Totals(g)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, t := range totals {
		fmt.Fprintf(w, "%-48s %.0f\n", t.Name, t.Value)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
