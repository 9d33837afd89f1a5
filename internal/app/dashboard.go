package app

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"hotel_admin/internal/domain"
)

const (
	recentHotels = 3
	topDistricts = 5
	AllDistricts = "All Districts"
)

type DistrictCount struct {
	District string `json:"district"`
	Count    int    `json:"count"`
}

type DashboardStats struct {
	TotalHotels       int             `json:"totalHotels"`
	TotalAmenities    int             `json:"totalAmenities"`
	AverageRating     float64         `json:"averageRating"`
	TotalNightlyPrice float64         `json:"totalNightlyPrice"`
	Recent            []domain.Hotel  `json:"recent"`
	Districts         []DistrictCount `json:"districts"`
}

// ComputeDashboard aggregates the hotel list. Unrated hotels count as 0 and
// unparsable prices are skipped.
func ComputeDashboard(hotels []domain.Hotel, amenities []domain.Amenity) DashboardStats {
	st := DashboardStats{TotalHotels: len(hotels), TotalAmenities: len(amenities)}

	var ratingSum float64
	counts := map[string]int{}
	for _, h := range hotels {
		if h.Rating != nil {
			ratingSum += *h.Rating
		}
		if p, err := strconv.ParseFloat(strings.TrimSpace(h.PricePerNight), 64); err == nil {
			st.TotalNightlyPrice += p
		}
		counts[h.District]++
	}
	if len(hotels) > 0 {
		st.AverageRating = ratingSum / float64(len(hotels))
	}

	recent := slices.Clone(hotels)
	slices.SortStableFunc(recent, func(a, b domain.Hotel) int { return b.CreatedAt.Compare(a.CreatedAt) })
	st.Recent = recent[:min(recentHotels, len(recent))]

	for d, n := range counts {
		st.Districts = append(st.Districts, DistrictCount{District: d, Count: n})
	}
	slices.SortFunc(st.Districts, func(a, b DistrictCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.District, b.District)
	})
	st.Districts = st.Districts[:min(topDistricts, len(st.Districts))]
	return st
}

// FilterHotels matches term against name or address, case-insensitively.
// An empty district or AllDistricts matches every district.
func FilterHotels(hotels []domain.Hotel, term, district string) []domain.Hotel {
	term = strings.ToLower(term)
	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		matchesTerm := strings.Contains(strings.ToLower(h.Name), term) ||
			strings.Contains(strings.ToLower(h.Address), term)
		matchesDistrict := district == "" || district == AllDistricts || h.District == district
		if matchesTerm && matchesDistrict {
			out = append(out, h)
		}
	}
	return out
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortAmenities returns a copy ordered by name.
func SortAmenities(in []domain.Amenity, order SortOrder) []domain.Amenity {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b domain.Amenity) int {
		c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		if order == SortDesc {
			return -c
		}
		return c
	})
	return out
}
