package metadata

import (
	"encoding/json"

	"github.com/nexvault/storefront-backend/pkg/enums"
	"github.com/tidwall/gjson"
)

// Media is the display record derived from a raw provider result.
type Media struct {
	ID          int64           `json:"id"`
	MediaType   enums.MediaType `json:"media_type"`
	Title       string          `json:"title"`
	Overview    string          `json:"overview"`
	PosterURL   string          `json:"poster_url,omitempty"`
	BackdropURL string          `json:"backdrop_url,omitempty"`
	ReleaseDate string          `json:"release_date,omitempty"`
	VoteAverage float64         `json:"vote_average"`
}

// NormalizeResults maps raw results to display records. Results without an id
// are skipped. fallback is used when a result carries no media_type, which is
// the case for discover responses.
func (c *Client) NormalizeResults(results []json.RawMessage, fallback enums.MediaType) []Media {
	base := defaultImageBaseURL
	if c != nil && c.imageBaseURL != "" {
		base = c.imageBaseURL
	}
	out := make([]Media, 0, len(results))
	for _, raw := range results {
		r := gjson.ParseBytes(raw)
		id := r.Get("id").Int()
		if id == 0 {
			continue
		}
		mediaType := enums.MediaType(r.Get("media_type").String())
		if !mediaType.IsValid() {
			mediaType = fallback
		}
		out = append(out, Media{
			ID:          id,
			MediaType:   mediaType,
			Title:       firstNonEmpty(r.Get("title").String(), r.Get("name").String()),
			Overview:    r.Get("overview").String(),
			PosterURL:   imageURL(base, firstNonEmpty(r.Get("poster_path").String(), r.Get("profile_path").String()), defaultImageSize),
			BackdropURL: imageURL(base, r.Get("backdrop_path").String(), "original"),
			ReleaseDate: firstNonEmpty(r.Get("release_date").String(), r.Get("first_air_date").String()),
			VoteAverage: r.Get("vote_average").Float(),
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
