package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hotel_admin/internal/app"
)

var sortOrder string

// amenitiesCmd groups amenity management
var amenitiesCmd = &cobra.Command{
	Use:   "amenities",
	Short: "Manage the amenity catalogue",
}

var amenitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List amenities sorted by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		order := app.SortOrder(sortOrder)
		if order != app.SortAsc && order != app.SortDesc {
			return fmt.Errorf("--sort must be asc or desc, got %q", sortOrder)
		}
		if err := session(); err != nil {
			return err
		}
		ctx, cancel := opContext()
		defer cancel()
		if err := console.Refresh(ctx); err != nil {
			return err
		}
		amenities := console.SortedAmenities(order)
		if asJSON {
			return printJSON(cmd.OutOrStdout(), amenities)
		}
		rows := make([][]string, 0, len(amenities))
		for _, a := range amenities {
			rows = append(rows, []string{a.ID, a.Icon + " " + a.Name, a.Category})
		}
		return table(cmd.OutOrStdout(), []string{"ID", "NAME", "CATEGORY"}, rows)
	},
}

var amenitiesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an amenity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeAmenity(cmd, "added", func(c *app.Console) error {
			ctx, cancel := opContext()
			defer cancel()
			return c.AddAmenity(ctx, args[0])
		})
	},
}

var amenitiesEditCmd = &cobra.Command{
	Use:   "edit <id> <new-name>",
	Short: "Rename an amenity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeAmenity(cmd, "updated", func(c *app.Console) error {
			ctx, cancel := opContext()
			defer cancel()
			return c.EditAmenity(ctx, args[0], args[1])
		})
	},
}

var amenitiesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an amenity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeAmenity(cmd, "deleted", func(c *app.Console) error {
			ctx, cancel := opContext()
			defer cancel()
			return c.DeleteAmenity(ctx, args[0])
		})
	},
}

func changeAmenity(cmd *cobra.Command, verb string, op func(*app.Console) error) error {
	if err := session(); err != nil {
		return err
	}
	if err := op(console); err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "amenity %s; %d amenities\n", verb, len(console.Amenities()))
	return nil
}

func init() {
	amenitiesListCmd.Flags().StringVar(&sortOrder, "sort", string(app.SortAsc), "Sort by name: asc or desc")

	amenitiesCmd.AddCommand(amenitiesListCmd)
	amenitiesCmd.AddCommand(amenitiesAddCmd)
	amenitiesCmd.AddCommand(amenitiesEditCmd)
	amenitiesCmd.AddCommand(amenitiesDeleteCmd)
}
