package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"hotel_admin/internal/app"
	"hotel_admin/internal/domain"
	"hotel_admin/internal/wizard"
)

var (
	searchTerm     string
	searchDistrict string
	draftPath      string
	importWorkers  int
	orphanLimit    int
	edit           app.HotelEdit
	editToggles    []string
)

// hotelsCmd groups hotel management
var hotelsCmd = &cobra.Command{
	Use:   "hotels",
	Short: "List, register and inspect hotels",
}

var hotelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hotels, optionally filtered by name/address and district",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session(); err != nil {
			return err
		}
		ctx, cancel := opContext()
		defer cancel()
		if err := console.Refresh(ctx); err != nil {
			return err
		}
		hotels := console.SearchHotels(searchTerm, searchDistrict)
		if asJSON {
			return printJSON(cmd.OutOrStdout(), hotels)
		}
		rows := make([][]string, 0, len(hotels))
		for _, h := range hotels {
			rows = append(rows, []string{h.ID, h.Name, h.District, rating(h.Rating), h.PricePerNight})
		}
		return table(cmd.OutOrStdout(), []string{"ID", "NAME", "DISTRICT", "RATING", "PRICE"}, rows)
	},
}

// hotelsRegisterCmd drives one draft file through every wizard step
var hotelsRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a hotel from a YAML draft file",
	Long: `Register a hotel from a YAML draft file.

The draft goes through the same three steps as the console wizard:
basic info, contact info, then images and amenities. Amenities are
assigned after the hotel is created; a failed assignment is reported
and recorded but not retried.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session(); err != nil {
			return err
		}
		ctx, cancel := opContext()
		defer cancel()
		d, err := app.LoadDraftFile(draftPath)
		if err != nil {
			return err
		}
		lists, err := refs.Load(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", app.ReferenceDataMessage, err)
		}
		res, err := reg.RegisterDraft(ctx, lists, d)
		var aerr *wizard.AssignmentError
		if errors.As(err, &aerr) {
			return fmt.Errorf("hotel %s created, but amenities %v were not assigned: %w", aerr.HotelID, aerr.AmenityIDs, aerr.Err)
		}
		if err != nil {
			return describe(err)
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registered %s (id %s), amenities %v\n", res.Hotel.Name, res.Hotel.ID, res.AmenitiesAssigned)
		return nil
	},
}

// hotelsImportCmd registers many drafts concurrently
var hotelsImportCmd = &cobra.Command{
	Use:   "import <draft.yaml>...",
	Short: "Register many hotels from draft files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session(); err != nil {
			return err
		}
		ctx, cancel := opContext()
		defer cancel()
		workers := importWorkers
		if workers <= 0 {
			workers = cfg.ImportWorkers
		}
		results, err := app.NewImporter(refs, reg, workers).Run(ctx, args)
		if err != nil {
			return err
		}
		failed := 0
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			status, detail := "ok", r.Result.Hotel.ID
			if r.Err != nil {
				failed++
				status, detail = "failed", describe(r.Err).Error()
			}
			rows = append(rows, []string{r.Path, status, detail})
		}
		if err := table(cmd.OutOrStdout(), []string{"DRAFT", "STATUS", "DETAIL"}, rows); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d drafts failed", failed, len(results))
		}
		return nil
	},
}

// hotelsEditCmd validates an edit against the listed hotel and prints the merged record
var hotelsEditCmd = &cobra.Command{
	Use:   "edit <hotel-id>",
	Short: "Edit a listed hotel's details",
	Long: `Edit a listed hotel's details.

Only the flags given replace the current values. Each --toggle-amenity
adds the amenity when absent and removes it when present. The hotel API
has no update endpoint, so the merged hotel is validated and printed
but not sent upstream; the console server keeps edits for its listings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session(); err != nil {
			return err
		}
		ctx, cancel := opContext()
		defer cancel()
		if err := console.Refresh(ctx); err != nil {
			return err
		}
		i := slices.IndexFunc(console.Hotels(), func(h domain.Hotel) bool { return h.ID == args[0] })
		if i < 0 {
			return fmt.Errorf("hotel %s: %w", args[0], domain.ErrNotFound)
		}
		e := app.EditOf(console.Hotels()[i])
		overrideEdit(cmd.Flags(), &e)
		for _, id := range editToggles {
			e.ToggleAmenity(id)
		}
		h, err := console.UpdateHotel(args[0], e)
		if err != nil {
			return describe(err)
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), h)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated %s (id %s): %s, %s, %s, rating %s, amenities %v\n",
			h.Name, h.ID, h.District, h.PricePerNight, h.Email, rating(h.Rating), h.Amenities)
		return nil
	},
}

// overrideEdit copies only the flags the operator set.
func overrideEdit(fs *pflag.FlagSet, e *app.HotelEdit) {
	set := func(flag string, dst *string, v string) {
		if fs.Changed(flag) {
			*dst = v
		}
	}
	set("name", &e.Name, edit.Name)
	set("description", &e.Description, edit.Description)
	set("price", &e.PricePerNight, edit.PricePerNight)
	set("address", &e.Address, edit.Address)
	set("district", &e.District, edit.District)
	set("type", &e.HotelType, edit.HotelType)
	set("landscape", &e.Landscape, edit.Landscape)
	set("location", &e.Location, edit.Location)
	set("email", &e.Email, edit.Email)
	set("phone", &e.Phone, edit.Phone)
	if fs.Changed("rating") {
		e.Rating = edit.Rating
	}
}

var hotelsImagesCmd = &cobra.Command{
	Use:   "images <hotel-id>",
	Short: "List a hotel's uploaded and external images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session(); err != nil {
			return err
		}
		ctx, cancel := opContext()
		defer cancel()
		urls, err := console.HotelImages(ctx, args[0])
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), urls)
		}
		for _, u := range urls {
			if len(u) > 80 {
				u = u[:77] + "..."
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}
		return nil
	},
}

// hotelsOrphansCmd lists hotels created without their amenities
var hotelsOrphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List hotels whose amenity assignment failed (needs MYSQL_DSN)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.MySQLDSN == "" {
			return errors.New("MYSQL_DSN is not set; no submission journal")
		}
		ctx, cancel := opContext()
		defer cancel()
		subs, err := reg.Unassigned(ctx, orphanLimit)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), subs)
		}
		rows := make([][]string, 0, len(subs))
		for _, s := range subs {
			rows = append(rows, []string{deref(s.HotelID), s.HotelName, fmt.Sprint(s.AmenityIDs), s.CreatedAt.Format("2006-01-02 15:04"), deref(s.Error)})
		}
		return table(cmd.OutOrStdout(), []string{"HOTEL", "NAME", "AMENITIES", "CREATED", "ERROR"}, rows)
	},
}

func rating(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func init() {
	hotelsListCmd.Flags().StringVarP(&searchTerm, "query", "q", "", "Match name or address")
	hotelsListCmd.Flags().StringVar(&searchDistrict, "district", app.AllDistricts, "District filter")

	hotelsRegisterCmd.Flags().StringVarP(&draftPath, "file", "f", "", "Draft YAML file")
	_ = hotelsRegisterCmd.MarkFlagRequired("file")

	hotelsImportCmd.Flags().IntVar(&importWorkers, "workers", 0, "Concurrent registrations (default IMPORT_WORKERS)")
	hotelsOrphansCmd.Flags().IntVar(&orphanLimit, "limit", 50, "Maximum rows")

	ef := hotelsEditCmd.Flags()
	ef.StringVar(&edit.Name, "name", "", "Hotel name")
	ef.StringVar(&edit.Description, "description", "", "Description")
	ef.Float64Var(&edit.Rating, "rating", 0, "Rating 0-5")
	ef.StringVar(&edit.PricePerNight, "price", "", "Price per night")
	ef.StringVar(&edit.Address, "address", "", "Address")
	ef.StringVar(&edit.District, "district", "", "District")
	ef.StringVar(&edit.HotelType, "type", "", "Hotel type")
	ef.StringVar(&edit.Landscape, "landscape", "", "Landscape")
	ef.StringVar(&edit.Location, "location", "", "Location note")
	ef.StringVar(&edit.Email, "email", "", "Contact email")
	ef.StringVar(&edit.Phone, "phone", "", "10-digit phone number")
	ef.StringArrayVar(&editToggles, "toggle-amenity", nil, "Amenity id to add or remove (repeatable)")

	hotelsCmd.AddCommand(hotelsListCmd)
	hotelsCmd.AddCommand(hotelsRegisterCmd)
	hotelsCmd.AddCommand(hotelsImportCmd)
	hotelsCmd.AddCommand(hotelsEditCmd)
	hotelsCmd.AddCommand(hotelsImagesCmd)
	hotelsCmd.AddCommand(hotelsOrphansCmd)
}
