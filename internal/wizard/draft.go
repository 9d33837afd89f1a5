package wizard

import (
	"fmt"
	"slices"

	"hotel_admin/internal/domain"
)

// Field names double as ValidationErrors keys.
type Field string

const (
	FieldName        Field = "hotelName"
	FieldDescription Field = "hotelDescription"
	FieldRating      Field = "hotelRating"
	FieldPrice       Field = "hotelBasicPricePerNight"
	FieldAddress     Field = "hotelAddress"
	FieldDistrict    Field = "district"
	FieldHotelType   Field = "hotelType"
	FieldLandscape   Field = "landscape"
	FieldLocation    Field = "location"
	FieldEmail       Field = "hotelEmail"
	FieldPhone       Field = "hotelPhoneNumber"
	FieldImageURLs   Field = "hotelImageUrls"
	FieldImages      Field = "hotelImages"
)

// Draft is the in-progress hotel record. Numeric inputs are kept as typed.
type Draft struct {
	Name          string              `json:"hotelName"`
	Description   string              `json:"hotelDescription"`
	Rating        string              `json:"hotelRating"`
	PricePerNight string              `json:"hotelBasicPricePerNight"`
	Address       string              `json:"hotelAddress"`
	District      string              `json:"district"`
	HotelType     string              `json:"hotelType"`
	Landscape     string              `json:"landscape"`
	Location      string              `json:"location"`
	Email         string              `json:"hotelEmail"`
	Phone         string              `json:"hotelPhoneNumber"`
	ImageURLs     string              `json:"hotelImageUrls"`
	Images        []domain.Attachment `json:"-"`
	Amenities     []string            `json:"selectedAmenities"`
}

func (d *Draft) text(f Field) (*string, error) {
	switch f {
	case FieldName:
		return &d.Name, nil
	case FieldDescription:
		return &d.Description, nil
	case FieldRating:
		return &d.Rating, nil
	case FieldPrice:
		return &d.PricePerNight, nil
	case FieldAddress:
		return &d.Address, nil
	case FieldDistrict:
		return &d.District, nil
	case FieldHotelType:
		return &d.HotelType, nil
	case FieldLandscape:
		return &d.Landscape, nil
	case FieldLocation:
		return &d.Location, nil
	case FieldEmail:
		return &d.Email, nil
	case FieldPhone:
		return &d.Phone, nil
	case FieldImageURLs:
		return &d.ImageURLs, nil
	}
	return nil, fmt.Errorf("wizard: %q is not a text field", f)
}

func (d Draft) clone() Draft {
	d.Images = slices.Clone(d.Images)
	d.Amenities = slices.Clone(d.Amenities)
	return d
}
