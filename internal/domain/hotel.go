package domain

import "time"

type Hotel struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Rating        *float64  `json:"rating"`
	PricePerNight string    `json:"pricePerNight"` // kept as the API returns it (number or string)
	Address       string    `json:"address"`
	District      string    `json:"district"`
	HotelType     string    `json:"hotelType,omitempty"`
	Landscape     string    `json:"landscape,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	ImageURLs     []string  `json:"imageUrls,omitempty"`
	Amenities     []string  `json:"amenities,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	RawJSON       []byte    `json:"-"` // full API payload
}

// HotelRequest is the JSON blob sent as the hotelData part of register-hotel.
type HotelRequest struct {
	HotelName               string  `json:"hotelName"`
	HotelDescription        string  `json:"hotelDescription"`
	HotelRating             float64 `json:"hotelRating"`
	HotelBasicPricePerNight string  `json:"hotelBasicPricePerNight"`
	HotelAddress            string  `json:"hotelAddress"`
	HotelEmail              string  `json:"hotelEmail"`
	HotelPhoneNumber        string  `json:"hotelPhoneNumber"`
	District                string  `json:"district"`
	Location                string  `json:"location"`
	HotelTypeID             int64   `json:"hotelTypeId"`
	LandscapeID             int64   `json:"landscapeId"`
}

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Registration is one register-hotel multipart submission.
type Registration struct {
	Hotel     HotelRequest
	ImageURLs []string
	Images    []Attachment
}

type Admin struct {
	ID    string
	Name  string
	Email string
	Phone string
	Role  string
}

type Credentials struct {
	Email    string `json:"adminEmail"`
	Phone    string `json:"adminPhoneNumber"`
	Password string `json:"adminPassword"`
}

type AdminSignup struct {
	Name     string `json:"adminName"`
	Email    string `json:"adminEmail"`
	Phone    string `json:"adminPhoneNumber"`
	Password string `json:"adminPassword"`
}

type LoginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
