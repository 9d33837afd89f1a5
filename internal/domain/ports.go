package domain

import "context"

type HotelAPI interface {
	// Reference data
	ListDistricts(ctx context.Context) ([]ReferenceItem, error)
	ListHotelTypes(ctx context.Context) ([]ReferenceItem, error)
	ListLandscapes(ctx context.Context) ([]ReferenceItem, error)
	ListAmenities(ctx context.Context) ([]Amenity, error)

	// Registration
	RegisterHotel(ctx context.Context, r Registration) (Hotel, error)
	AssignAmenities(ctx context.Context, hotelID string, amenityIDs []string) error

	// Management
	ListHotels(ctx context.Context) ([]Hotel, error)
	HotelImages(ctx context.Context, hotelID string) ([]string, error)
	AddAmenity(ctx context.Context, name string) error
	EditAmenity(ctx context.Context, id, name string) error
	DeleteAmenity(ctx context.Context, id string) error

	// Admin accounts
	Login(ctx context.Context, c Credentials) (LoginResult, error)
	RegisterAdmin(ctx context.Context, a AdminSignup) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type SubmissionJournal interface {
	Record(ctx context.Context, s Submission) error
	ListUnassigned(ctx context.Context, limit int) ([]Submission, error)
}
