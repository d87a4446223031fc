// Package embed builds third-party player URLs for titles.
package embed

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nexvault/storefront-backend/pkg/config"
	"github.com/nexvault/storefront-backend/pkg/enums"
)

const (
	defaultBaseURL = "https://multiembed.mov"
	defaultServer  = "vidplay"
)

type Server struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var servers = []Server{
	{ID: "vidplay", Name: "VidPlay", Icon: "🎬"},
	{ID: "upcloud", Name: "UpCloud", Icon: "☁️"},
	{ID: "superembed", Name: "SuperEmbed", Icon: "⚡"},
	{ID: "filemoon", Name: "FileMoon", Icon: "🌙"},
	{ID: "streamwish", Name: "StreamWish", Icon: "✨"},
}

// Builder assembles embed URLs against one origin.
type Builder struct {
	baseURL       string
	defaultServer string
}

func NewBuilder(cfg config.EmbedConfig) *Builder {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	server := strings.TrimSpace(cfg.DefaultServer)
	if server == "" {
		server = defaultServer
	}
	return &Builder{baseURL: base, defaultServer: server}
}

// Origin is the scheme and host that must be allowed to frame content.
func (b *Builder) Origin() string {
	u, err := url.Parse(b.baseURL)
	if err != nil || u.Host == "" {
		return b.baseURL
	}
	return u.Scheme + "://" + u.Host
}

// StreamURL returns the player URL for a title. Anything but tv is played as a movie.
func (b *Builder) StreamURL(mediaType enums.MediaType, tmdbID int, server string) string {
	kind := "movie"
	if mediaType == enums.MediaTypeTV {
		kind = "tv"
	}
	return fmt.Sprintf("%s/%s?tmdb=%d&server=%s", b.baseURL, kind, tmdbID, url.QueryEscape(b.ResolveServer(server)))
}

// ResolveServer returns server, or the default when it is blank.
func (b *Builder) ResolveServer(server string) string {
	server = strings.TrimSpace(server)
	if server == "" {
		return b.defaultServer
	}
	return server
}

// DirectURL returns the direct stream URL. Season and episode are only added
// when both are set.
func (b *Builder) DirectURL(tmdbID, season, episode int) string {
	u := fmt.Sprintf("%s/directstream.php?video_id=%d&tmdb=1", b.baseURL, tmdbID)
	if season > 0 && episode > 0 {
		u += "&s=" + strconv.Itoa(season) + "&e=" + strconv.Itoa(episode)
	}
	return u
}

// Servers lists the selectable player servers.
func (b *Builder) Servers() []Server {
	out := make([]Server, len(servers))
	copy(out, servers)
	return out
}

// KnownServer reports whether id is one of the listed servers.
func KnownServer(id string) bool {
	for _, s := range servers {
		if s.ID == id {
			return true
		}
	}
	return false
}
