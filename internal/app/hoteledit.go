package app

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"hotel_admin/internal/domain"
)

var tenDigitsRx = regexp.MustCompile(`^[0-9]{10}$`)

// HotelEdit holds every editable field of a listed hotel.
type HotelEdit struct {
	Name          string   `json:"hotelName"`
	Description   string   `json:"hotelDescription"`
	Rating        float64  `json:"hotelRating"`
	PricePerNight string   `json:"hotelBasicPricePerNight"`
	Address       string   `json:"hotelAddress"`
	District      string   `json:"district"`
	HotelType     string   `json:"hotelType"`
	Landscape     string   `json:"landscape"`
	Location      string   `json:"location"`
	Email         string   `json:"hotelEmail"`
	Phone         string   `json:"hotelPhoneNumber"`
	Amenities     []string `json:"amenities"`
}

// EditOf prefills an edit form from h. A missing rating starts at 0.
func EditOf(h domain.Hotel) HotelEdit {
	e := HotelEdit{
		Name:          h.Name,
		Description:   h.Description,
		PricePerNight: h.PricePerNight,
		Address:       h.Address,
		District:      h.District,
		HotelType:     h.HotelType,
		Landscape:     h.Landscape,
		Email:         h.Email,
		Phone:         h.Phone,
		Amenities:     slices.Clone(h.Amenities),
	}
	if h.Rating != nil {
		e.Rating = *h.Rating
	}
	if h.Location != nil {
		e.Location = *h.Location
	}
	return e
}

// ToggleAmenity adds id when absent and removes it when present.
func (e *HotelEdit) ToggleAmenity(id string) {
	if i := slices.Index(e.Amenities, id); i >= 0 {
		e.Amenities = slices.Delete(e.Amenities, i, i+1)
		return
	}
	e.Amenities = append(e.Amenities, id)
}

// ValidateHotelEdit requires every field except rating and location.
func ValidateHotelEdit(e HotelEdit) FormErrors {
	errs := FormErrors{}
	required := []struct{ field, value, msg string }{
		{"hotelName", e.Name, "Hotel name is required"},
		{"hotelDescription", e.Description, "Description is required"},
		{"hotelBasicPricePerNight", e.PricePerNight, "Price is required"},
		{"hotelAddress", e.Address, "Address is required"},
		{"district", e.District, "District is required"},
		{"hotelType", e.HotelType, "Hotel type is required"},
		{"landscape", e.Landscape, "Landscape is required"},
		{"hotelEmail", e.Email, "Email is required"},
		{"hotelPhoneNumber", e.Phone, "Phone number is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.msg
		}
	}
	if e.Email != "" && !IsEmail(e.Email) {
		errs["hotelEmail"] = "Invalid email format"
	}
	if e.Phone != "" && !tenDigitsRx.MatchString(e.Phone) {
		errs["hotelPhoneNumber"] = "Phone number must be 10 digits"
	}
	return errs
}

// Apply merges the edit into h. Identity and creation time are kept.
func (e HotelEdit) Apply(h domain.Hotel) domain.Hotel {
	rating, loc := e.Rating, e.Location
	h.Name = e.Name
	h.Description = e.Description
	h.Rating = &rating
	h.PricePerNight = e.PricePerNight
	h.Address = e.Address
	h.District = e.District
	h.HotelType = e.HotelType
	h.Landscape = e.Landscape
	h.Location = &loc
	h.Email = e.Email
	h.Phone = e.Phone
	h.Amenities = slices.Clone(e.Amenities)
	h.RawJSON = nil
	return h
}

// HotelEdits keeps accepted edits by hotel id and overlays them on listings.
// Safe for concurrent use.
type HotelEdits struct {
	mu sync.RWMutex
	m  map[string]HotelEdit
}

func NewHotelEdits() *HotelEdits { return &HotelEdits{m: map[string]HotelEdit{}} }

// Update validates e and records it against the hotel with id in hotels.
func (s *HotelEdits) Update(hotels []domain.Hotel, id string, e HotelEdit) (domain.Hotel, error) {
	if errs := ValidateHotelEdit(e); len(errs) > 0 {
		return domain.Hotel{}, errs
	}
	i := slices.IndexFunc(hotels, func(h domain.Hotel) bool { return h.ID == id })
	if i < 0 {
		return domain.Hotel{}, domain.ErrNotFound
	}
	e.Amenities = slices.Clone(e.Amenities)
	s.mu.Lock()
	s.m[id] = e
	s.mu.Unlock()
	return e.Apply(hotels[i]), nil
}

// Overlay returns hotels with recorded edits applied. The input is not
// modified. A nil store returns hotels as they are.
func (s *HotelEdits) Overlay(hotels []domain.Hotel) []domain.Hotel {
	if s == nil {
		return hotels
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(hotels)
	for i, h := range out {
		if e, ok := s.m[h.ID]; ok {
			out[i] = e.Apply(h)
		}
	}
	return out
}
