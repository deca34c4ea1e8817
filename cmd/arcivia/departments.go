package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/arcivia/arcivia-explore/pkg/resolver"
	"github.com/spf13/cobra"
)

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "List collection departments and the categories that rotate through them",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		if a.met == nil {
			return errors.New("departments needs the collection API; drop --offline")
		}

		depts, err := a.met.Departments(ctx)
		if err != nil {
			return err
		}

		usedBy := make(map[int][]string)
		for _, c := range resolver.Categories() {
			for _, id := range resolver.DepartmentsFor(c) {
				usedBy[id] = append(usedBy[id], c)
			}
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDEPARTMENT\tCATEGORIES")
		for _, d := range depts {
			fmt.Fprintf(tw, "%d\t%s\t%v\n", d.ID, d.DisplayName, usedBy[d.ID])
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(departmentsCmd)
}
