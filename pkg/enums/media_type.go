package enums

import "fmt"

// MediaType is the metadata provider's media discriminator.
type MediaType string

const (
	MediaTypeAll    MediaType = "all"
	MediaTypeMovie  MediaType = "movie"
	MediaTypeTV     MediaType = "tv"
	MediaTypePerson MediaType = "person"
)

var validMediaTypes = []MediaType{
	MediaTypeAll,
	MediaTypeMovie,
	MediaTypeTV,
	MediaTypePerson,
}

// String implements fmt.Stringer.
func (m MediaType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MediaType.
func (m MediaType) IsValid() bool {
	for _, candidate := range validMediaTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsTitle reports whether the type names a concrete title (movie or tv).
func (m MediaType) IsTitle() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// ParseMediaType converts raw input into a MediaType.
func ParseMediaType(value string) (MediaType, error) {
	for _, candidate := range validMediaTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media type %q", value)
}
