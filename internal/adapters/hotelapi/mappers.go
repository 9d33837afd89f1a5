package hotelapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_admin/internal/domain"
)

/********** alias registries (single source of truth) **********/

var districtAliases = map[string][]string{
	"key":  {"key", "districtKey", "id"},
	"name": {"name", "districtName"},
}

var hotelTypeAliases = map[string][]string{
	"key":  {"hotelTypeId", "id"},
	"name": {"hotelTypeName", "name"},
}

var landscapeAliases = map[string][]string{
	"key":  {"landscapeId", "id"},
	"name": {"landscapeTypeName", "landscapeName", "name"},
}

var amenityAliases = map[string][]string{
	"id":       {"amenitiesId", "amenityId", "id"},
	"name":     {"amenitiesName", "amenityName", "name"},
	"category": {"category"},
}

var hotelAliases = map[string][]string{
	"id":          {"hotelId", "id"},
	"name":        {"hotelName", "name"},
	"description": {"hotelDescription", "description"},
	"price":       {"hotelBasicPricePerNight", "price"},
	"address":     {"hotelAddress", "address"},
	"district":    {"district", "district.name", "districtName"},
	"type":        {"hotelTypeName", "hotelType", "hotelType.hotelTypeName"},
	"landscape":   {"landscapeTypeName", "landscape", "landscape.landscapeTypeName"},
	"location":    {"location"},
	"email":       {"hotelEmail", "email"},
	"phone":       {"hotelPhoneNumber", "phone"},
	"created":     {"createdAt", "created_at"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// scalarString renders strings and JSON numbers alike; ids arrive as either.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// firstScalarAlias: first non-empty string/number for a named alias set.
func firstScalarAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := scalarString(lookupAny(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (number/string like "4,5").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return &f
			}
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstSliceStrings: accept []any with either strings or {url/urls/name}.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		if raw, ok := lookupAny(m, k).([]any); ok {
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t != "" {
						out = append(out, t)
					}
				case float64, json.Number:
					out = append(out, scalarString(t))
				case map[string]any:
					for _, f := range []string{"url", "urls", "amenitiesId", "amenitiesName", "name"} {
						if s := scalarString(t[f]); s != "" {
							out = append(out, s)
							break
						}
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func parseTimeFlexible(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

/********** reference mappers **********/

func mapReference(in []map[string]any, aliases map[string][]string) []domain.ReferenceItem {
	out := make([]domain.ReferenceItem, 0, len(in))
	for _, m := range in {
		out = append(out, domain.ReferenceItem{
			Key:  firstScalarAlias(m, aliases, "key"),
			Name: firstScalarAlias(m, aliases, "name"),
		})
	}
	return out
}

// mapAmenities assigns the fixed icon and defaults category to "".
func mapAmenities(in []map[string]any) []domain.Amenity {
	out := make([]domain.Amenity, 0, len(in))
	for _, m := range in {
		out = append(out, domain.Amenity{
			ID:       firstScalarAlias(m, amenityAliases, "id"),
			Name:     firstScalarAlias(m, amenityAliases, "name"),
			Icon:     domain.AmenityIcon,
			Category: firstScalarAlias(m, amenityAliases, "category"),
		})
	}
	return out
}

/********** hotel mapper **********/

func mapHotel(p map[string]any) domain.Hotel {
	raw, err := json.Marshal(p)
	if err != nil {
		log.Error().Err(err).
			Str("context", "mapHotel").
			Msg("failed to marshal hotel to JSON")
	}

	h := domain.Hotel{
		ID:            firstScalarAlias(p, hotelAliases, "id"),
		Name:          firstScalarAlias(p, hotelAliases, "name"),
		Description:   firstScalarAlias(p, hotelAliases, "description"),
		Rating:        getFloatFlexible(p, "hotelRating", "rating"),
		PricePerNight: firstScalarAlias(p, hotelAliases, "price"),
		Address:       firstScalarAlias(p, hotelAliases, "address"),
		District:      firstScalarAlias(p, hotelAliases, "district"),
		HotelType:     firstScalarAlias(p, hotelAliases, "type"),
		Landscape:     firstScalarAlias(p, hotelAliases, "landscape"),
		Email:         firstScalarAlias(p, hotelAliases, "email"),
		Phone:         firstScalarAlias(p, hotelAliases, "phone"),
		ImageURLs:     firstSliceStrings(p, "hotelImageUrls", "imageUrls"),
		Amenities:     firstSliceStrings(p, "amenities", "amenitiesIds"),
		CreatedAt:     parseTimeFlexible(firstScalarAlias(p, hotelAliases, "created")),
		RawJSON:       raw,
	}
	if loc := firstScalarAlias(p, hotelAliases, "location"); loc != "" {
		h.Location = &loc
	}
	return h
}
