package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_admin/internal/domain"
)

// Registrar is the part of the hotel API the submission needs.
type Registrar interface {
	RegisterHotel(ctx context.Context, r domain.Registration) (domain.Hotel, error)
	AssignAmenities(ctx context.Context, hotelID string, amenityIDs []string) error
}

type Result struct {
	Hotel             domain.Hotel
	AmenitiesAssigned []string
}

var (
	ErrNotOnFinalStep   = errors.New("wizard: submit is only available on the last step")
	ErrAlreadySubmitted = errors.New("wizard: draft already submitted")
	ErrMissingHotelID   = errors.New("wizard: create response has no hotel id")
)

const fallbackSubmitMessage = "Registration failed"

// SubmitError is a failed create call. Nothing was associated and the draft is intact.
type SubmitError struct{ Err error }

func (e *SubmitError) Error() string { return "register hotel: " + e.Err.Error() }
func (e *SubmitError) Unwrap() error { return e.Err }

// Message is what the operator sees: the server's payload when it sent one.
func (e *SubmitError) Message() string {
	var m interface{ ServerMessage() string }
	if errors.As(e.Err, &m) {
		if s := m.ServerMessage(); s != "" {
			return s
		}
	}
	return fallbackSubmitMessage
}

// AssignmentError means the hotel exists but its amenities were not attached.
type AssignmentError struct {
	HotelID    string
	AmenityIDs []string
	Err        error
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("assign amenities to hotel %s: %v", e.HotelID, e.Err)
}
func (e *AssignmentError) Unwrap() error { return e.Err }

// Submit re-checks the contact fields and runs the create-then-assign sequence.
// Step-1 fields are not re-validated here.
func (w *Wizard) Submit(ctx context.Context, reg Registrar) (Result, error) {
	if w.step != StepImagesAndAmenities {
		return Result{}, ErrNotOnFinalStep
	}
	if w.submitted {
		return Result{}, ErrAlreadySubmitted
	}
	errs := ValidateContactInfo(w.draft)
	w.errs = errs
	if len(errs) > 0 {
		return Result{}, errs.clone()
	}

	req := domain.Registration{
		Hotel:     BuildRequest(w.draft),
		ImageURLs: ParseImageURLs(w.draft.ImageURLs),
		Images:    slices.Clone(w.draft.Images),
	}
	hotel, err := reg.RegisterHotel(ctx, req)
	if err != nil {
		return Result{}, &SubmitError{Err: err}
	}
	if hotel.ID == "" {
		return Result{}, &SubmitError{Err: ErrMissingHotelID}
	}
	log.Info().Str("hotel_id", hotel.ID).Str("name", hotel.Name).Msg("hotel registered")

	// the hotel exists from here on; a second submit would create a duplicate
	w.submitted = true
	res := Result{Hotel: hotel}
	if ids := slices.Clone(w.draft.Amenities); len(ids) > 0 {
		if err := reg.AssignAmenities(ctx, hotel.ID, ids); err != nil {
			return res, &AssignmentError{HotelID: hotel.ID, AmenityIDs: ids, Err: err}
		}
		res.AmenitiesAssigned = ids
		res.Hotel.Amenities = ids
	}
	return res, nil
}

// BuildRequest converts the draft into the hotelData payload. Rating falls
// back to 0 when blank; price is passed through as typed.
func BuildRequest(d Draft) domain.HotelRequest {
	var rating float64
	if d.Rating != "" {
		rating, _ = parseNumber(d.Rating)
	}
	return domain.HotelRequest{
		HotelName:               d.Name,
		HotelDescription:        d.Description,
		HotelRating:             rating,
		HotelBasicPricePerNight: d.PricePerNight,
		HotelAddress:            d.Address,
		HotelEmail:              d.Email,
		HotelPhoneNumber:        d.Phone,
		District:                d.District,
		Location:                d.Location,
		HotelTypeID:             numericKey(d.HotelType),
		LandscapeID:             numericKey(d.Landscape),
	}
}

func numericKey(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseImageURLs splits comma-separated text into trimmed, non-empty URLs.
func ParseImageURLs(s string) []string {
	out := []string{}
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
