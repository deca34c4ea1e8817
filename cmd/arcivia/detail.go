package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/arcivia/arcivia-explore/pkg/explore"
	"github.com/spf13/cobra"
)

var detailCmd = &cobra.Command{
	Use:   "detail <id>",
	Short: "Show one item with related items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.detail.Load(ctx, args[0], a.pool)
		if errors.Is(err, explore.ErrItemNotFound) {
			return fmt.Errorf("item %s not found", args[0])
		}
		if err != nil {
			return errors.New(explore.ErrorMessage(err))
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), d)
		}
		printDetail(cmd.OutOrStdout(), d)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detailCmd)
	detailCmd.Flags().Bool("json", false, "Print JSON")
}

func printDetail(w io.Writer, d explore.Detail) {
	it := d.Item
	fmt.Fprintf(w, "%s\n%s\n\n", it.Title, it.Subtitle)
	fmt.Fprintf(w, "Era:       %s\n", it.Era)
	fmt.Fprintf(w, "Culture:   %s\n", it.Culture)
	fmt.Fprintf(w, "Location:  %s\n", it.Location)
	fmt.Fprintf(w, "Image:     %s\n", it.ImageURL)
	if len(it.Tags) > 0 {
		fmt.Fprintf(w, "Tags:      %v\n", it.Tags)
	}
	fmt.Fprintf(w, "\n%s\n", it.Description)

	if len(d.Related) > 0 {
		fmt.Fprintln(w, "\nRelated:")
		for _, r := range d.Related {
			fmt.Fprintf(w, "  %-10s %s (%s)\n", r.ID, truncate(r.Title, 48), r.Culture)
		}
	}
}
