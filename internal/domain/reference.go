package domain

// AmenityIcon is assigned to every amenity client-side regardless of server content.
const AmenityIcon = "🏷️"

type ReferenceItem struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type Amenity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

type ReferenceLists struct {
	Districts  []ReferenceItem `json:"districts"`
	HotelTypes []ReferenceItem `json:"hotelTypes"`
	Landscapes []ReferenceItem `json:"landscapes"`
	Amenities  []Amenity       `json:"amenities"`
}

func (r ReferenceLists) HasAmenity(id string) bool {
	for _, a := range r.Amenities {
		if a.ID == id {
			return true
		}
	}
	return false
}
