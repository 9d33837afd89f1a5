package app

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hotel_admin/internal/domain"
	"hotel_admin/internal/wizard"
)

// DraftFile is a hotel draft prepared offline, e.g.
//
//	name: Ocean View
//	price: "1500"
//	amenities: ["1", "3"]
//	images: [front.jpg]
type DraftFile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Rating      string   `yaml:"rating"`
	Price       string   `yaml:"price"`
	Address     string   `yaml:"address"`
	District    string   `yaml:"district"`
	HotelType   string   `yaml:"hotelType"`
	Landscape   string   `yaml:"landscape"`
	Location    string   `yaml:"location"`
	Email       string   `yaml:"email"`
	Phone       string   `yaml:"phone"`
	ImageURLs   []string `yaml:"imageUrls"`
	Amenities   []string `yaml:"amenities"`
	Images      []string `yaml:"images"` // paths relative to the draft file

	Attachments []domain.Attachment `yaml:"-"`
}

func ParseDraft(b []byte) (DraftFile, error) {
	var d DraftFile
	if err := yaml.Unmarshal(b, &d); err != nil {
		return DraftFile{}, fmt.Errorf("parse draft: %w", err)
	}
	return d, nil
}

// LoadDraftFile reads a YAML draft and the image files it names.
func LoadDraftFile(path string) (DraftFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return DraftFile{}, err
	}
	d, err := ParseDraft(b)
	if err != nil {
		return DraftFile{}, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for _, p := range d.Images {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return DraftFile{}, fmt.Errorf("%s: image: %w", path, err)
		}
		d.Attachments = append(d.Attachments, domain.Attachment{
			Filename:    filepath.Base(p),
			ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(p))),
			Content:     content,
		})
	}
	return d, nil
}

// Apply feeds the draft into w field by field, the way an operator would.
func (d DraftFile) Apply(w *wizard.Wizard) error {
	fields := []struct {
		f wizard.Field
		v string
	}{
		{wizard.FieldName, d.Name},
		{wizard.FieldDescription, d.Description},
		{wizard.FieldRating, d.Rating},
		{wizard.FieldPrice, d.Price},
		{wizard.FieldAddress, d.Address},
		{wizard.FieldDistrict, d.District},
		{wizard.FieldHotelType, d.HotelType},
		{wizard.FieldLandscape, d.Landscape},
		{wizard.FieldLocation, d.Location},
		{wizard.FieldEmail, d.Email},
		{wizard.FieldPhone, d.Phone},
		{wizard.FieldImageURLs, strings.Join(d.ImageURLs, ",")},
	}
	for _, kv := range fields {
		if err := w.Set(kv.f, kv.v); err != nil {
			return err
		}
	}
	if len(d.Attachments) > 0 {
		if err := w.AddImages(d.Attachments); err != nil {
			return err
		}
	}
	for _, id := range d.Amenities {
		if w.Selected(id) {
			continue
		}
		if err := w.ToggleAmenity(id); err != nil {
			return err
		}
	}
	return nil
}
