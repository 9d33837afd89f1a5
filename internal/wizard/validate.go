package wizard

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidationErrors maps a field name to a human-readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for k, m := range v {
		out[k] = m
	}
	return out
}

var (
	emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRx = regexp.MustCompile(`^[0-9]{10}$`)
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 1000
)

// ValidateBasicInfo applies the Step-1 rules. Every rule is evaluated.
func ValidateBasicInfo(d Draft) ValidationErrors {
	errs := ValidationErrors{}

	switch {
	case d.Name == "":
		errs[string(FieldName)] = "Hotel name is required"
	case utf8.RuneCountInString(d.Name) > maxNameLen:
		errs[string(FieldName)] = "Max 100 characters"
	}

	switch {
	case d.Description == "":
		errs[string(FieldDescription)] = "Description required"
	case utf8.RuneCountInString(d.Description) > maxDescriptionLen:
		errs[string(FieldDescription)] = "Max 1000 characters"
	}

	if d.Rating != "" {
		r, err := parseNumber(d.Rating)
		if err != nil || r < 0 || r > 5 {
			errs[string(FieldRating)] = "Rating 0-5"
		}
	}

	if d.PricePerNight == "" {
		errs[string(FieldPrice)] = "Price required"
	} else if p, err := parseNumber(d.PricePerNight); err != nil {
		errs[string(FieldPrice)] = "Price must be a number"
	} else if p < 0 {
		errs[string(FieldPrice)] = "Must be positive"
	}

	if d.Address == "" {
		errs[string(FieldAddress)] = "Address required"
	}
	if d.District == "" {
		errs[string(FieldDistrict)] = "District required"
	}
	if d.HotelType == "" {
		errs[string(FieldHotelType)] = "Hotel type required"
	}
	if d.Landscape == "" {
		errs[string(FieldLandscape)] = "Landscape required"
	}
	return errs
}

// ValidateContactInfo applies the Step-2 rules.
func ValidateContactInfo(d Draft) ValidationErrors {
	errs := ValidationErrors{}

	switch {
	case d.Email == "":
		errs[string(FieldEmail)] = "Email required"
	case !emailRx.MatchString(d.Email):
		errs[string(FieldEmail)] = "Invalid email"
	}

	switch {
	case d.Phone == "":
		errs[string(FieldPhone)] = "Phone required"
	case !phoneRx.MatchString(d.Phone):
		errs[string(FieldPhone)] = "10 digits"
	}
	return errs
}

func validateStep(s Step, d Draft) ValidationErrors {
	switch s {
	case StepBasicInfo:
		return ValidateBasicInfo(d)
	case StepContactInfo:
		return ValidateContactInfo(d)
	}
	// image count is enforced at selection time
	return ValidationErrors{}
}

var errNotFinite = errors.New("not a finite number")

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}
