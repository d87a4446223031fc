package metadata

import (
	"encoding/json"

	"github.com/nexvault/storefront-backend/pkg/enums"
	"github.com/tidwall/gjson"
)

// Details is a single title as returned by the provider plus the chosen trailer.
type Details struct {
	MediaType enums.MediaType `json:"media_type"`
	Media     json.RawMessage `json:"media"`
	Trailer   *Video          `json:"trailer,omitempty"`
}

type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// selectTrailer prefers a YouTube trailer and falls back to the first video.
func selectTrailer(body []byte) *Video {
	videos := gjson.GetBytes(body, "videos.results").Array()
	if len(videos) == 0 {
		return nil
	}
	chosen := videos[0]
	for _, v := range videos {
		if v.Get("type").String() == "Trailer" && v.Get("site").String() == "YouTube" {
			chosen = v
			break
		}
	}
	return &Video{
		Key:  chosen.Get("key").String(),
		Name: chosen.Get("name").String(),
		Site: chosen.Get("site").String(),
		Type: chosen.Get("type").String(),
	}
}
