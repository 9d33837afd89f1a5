package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show hotel and amenity totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session(); err != nil {
			return err
		}
		ctx, cancel := opContext()
		defer cancel()
		if err := console.Refresh(ctx); err != nil {
			return err
		}
		st := console.Dashboard()
		if asJSON {
			return printJSON(cmd.OutOrStdout(), st)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Hotels:          %d\n", st.TotalHotels)
		fmt.Fprintf(out, "Amenities:       %d\n", st.TotalAmenities)
		fmt.Fprintf(out, "Average rating:  %.1f\n", st.AverageRating)
		fmt.Fprintf(out, "Nightly total:   %s\n\n", strconv.FormatFloat(st.TotalNightlyPrice, 'f', 2, 64))

		rows := make([][]string, 0, len(st.Recent))
		for _, h := range st.Recent {
			rows = append(rows, []string{h.ID, h.Name, h.District, h.CreatedAt.Format("2006-01-02")})
		}
		if err := table(out, []string{"RECENT", "NAME", "DISTRICT", "CREATED"}, rows); err != nil {
			return err
		}
		fmt.Fprintln(out)

		rows = rows[:0]
		for _, d := range st.Districts {
			rows = append(rows, []string{d.District, strconv.Itoa(d.Count)})
		}
		return table(out, []string{"DISTRICT", "HOTELS"}, rows)
	},
}
