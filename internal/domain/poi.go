package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Epoch is the historical-period tag of a POI.
type Epoch string

const (
	EpochMedieval Epoch = "medieval"
	EpochImperial Epoch = "imperial"
	EpochSoviet   Epoch = "soviet"
	EpochModern   Epoch = "modern"
)

// Valid reports whether e is a known epoch.
func (e Epoch) Valid() bool {
	switch e {
	case EpochMedieval, EpochImperial, EpochSoviet, EpochModern:
		return true
	}
	return false
}

// Category is the thematic tag of a POI.
type Category string

const (
	CategoryArchitecture Category = "architecture"
	CategoryArt          Category = "art"
	CategoryHistory      Category = "history"
	CategoryReligion     Category = "religion"
	CategoryCulture      Category = "culture"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryArchitecture, CategoryArt, CategoryHistory, CategoryReligion, CategoryCulture:
		return true
	}
	return false
}

// Importance bounds, inclusive.
const (
	MinImportance = 1
	MaxImportance = 10
)

// POI is a named, geolocated point of interest. Name is the de-duplication
// key. Nil optional fields are persisted as NULL.
type POI struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Epoch       Epoch    `json:"epoch"`
	Category    Category `json:"category"`
	Importance  int      `json:"importance"`
	YearBuilt   *int     `json:"year_built,omitempty"`
	Architect   *string  `json:"architect,omitempty"`
	Style       *string  `json:"style,omitempty"`
	Photos      []string `json:"photos"`
}

// ValidationError reports the first invalid field of a POI.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks the POI against the data model. It returns a
// *ValidationError for the first offending field.
func (p POI) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", "must not be empty")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return invalid("latitude", "%v out of range [-90, 90]", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return invalid("longitude", "%v out of range [-180, 180]", p.Longitude)
	}
	if !p.Epoch.Valid() {
		return invalid("epoch", "unknown epoch %q", p.Epoch)
	}
	if !p.Category.Valid() {
		return invalid("category", "unknown category %q", p.Category)
	}
	if p.Importance < MinImportance || p.Importance > MaxImportance {
		return invalid("importance", "%d out of range [%d, %d]", p.Importance, MinImportance, MaxImportance)
	}
	for i, raw := range p.Photos {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("photos", "photo %d is not an absolute http(s) URL: %q", i, raw)
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate shared catalog data.
func (p POI) Clone() POI {
	c := p
	if p.YearBuilt != nil {
		v := *p.YearBuilt
		c.YearBuilt = &v
	}
	if p.Architect != nil {
		v := *p.Architect
		c.Architect = &v
	}
	if p.Style != nil {
		v := *p.Style
		c.Style = &v
	}
	c.Photos = append([]string(nil), p.Photos...)
	return c
}
