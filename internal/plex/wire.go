package plex

import (
	"net/url"
	"time"
)

// containerResponse is the JSON envelope returned by Plex Media Server.
type containerResponse struct {
	MediaContainer mediaContainer `json:"MediaContainer"`
}

type mediaContainer struct {
	Size              int         `json:"size"`
	TotalSize         int         `json:"totalSize"`
	Offset            int         `json:"offset"`
	MachineIdentifier string      `json:"machineIdentifier"`
	FriendlyName      string      `json:"friendlyName"`
	Version           string      `json:"version"`
	Metadata          []metadata  `json:"Metadata"`
	Directory         []directory `json:"Directory"`
	Hub               []hub       `json:"Hub"`
}

// directory is a library section entry from /library/sections.
type directory struct {
	Key   string `json:"key"`
	UUID  string `json:"uuid"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Agent string `json:"agent"`
	Thumb string `json:"thumb"`
}

type hub struct {
	Type          string     `json:"type"`
	HubIdentifier string     `json:"hubIdentifier"`
	Title         string     `json:"title"`
	Size          int        `json:"size"`
	Metadata      []metadata `json:"Metadata"`
	Directory     []metadata `json:"Directory"`
}

type tag struct {
	Tag string `json:"tag"`
}

// metadata is the generic record every item listing returns.
type metadata struct {
	RatingKey            string  `json:"ratingKey"`
	Key                  string  `json:"key"`
	Type                 string  `json:"type"`
	Title                string  `json:"title"`
	Summary              string  `json:"summary"`
	Thumb                string  `json:"thumb"`
	Art                  string  `json:"art"`
	Composite            string  `json:"composite"`
	ContentRating        string  `json:"contentRating"`
	Studio               string  `json:"studio"`
	Year                 int     `json:"year"`
	Index                int     `json:"index"`
	ParentIndex          int     `json:"parentIndex"`
	ParentRatingKey      string  `json:"parentRatingKey"`
	ParentTitle          string  `json:"parentTitle"`
	GrandparentRatingKey string  `json:"grandparentRatingKey"`
	GrandparentTitle     string  `json:"grandparentTitle"`
	Duration             int64   `json:"duration"`
	ViewOffset           int64   `json:"viewOffset"`
	ViewCount            int     `json:"viewCount"`
	LeafCount            int     `json:"leafCount"`
	ViewedLeafCount      int     `json:"viewedLeafCount"`
	ChildCount           int     `json:"childCount"`
	PlaylistType         string  `json:"playlistType"`
	Smart                bool    `json:"smart"`
	Genre                []tag   `json:"Genre"`
	Media                []media `json:"Media"`
}

type media struct {
	ID              int64  `json:"id"`
	Duration        int64  `json:"duration"`
	Bitrate         int    `json:"bitrate"`
	Container       string `json:"container"`
	AudioCodec      string `json:"audioCodec"`
	AudioChannels   int    `json:"audioChannels"`
	VideoCodec      string `json:"videoCodec"`
	VideoResolution string `json:"videoResolution"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Part            []part `json:"Part"`
}

type part struct {
	ID        int64    `json:"id"`
	Key       string   `json:"key"`
	Duration  int64    `json:"duration"`
	File      string   `json:"file"`
	Size      int64    `json:"size"`
	Container string   `json:"container"`
	Stream    []stream `json:"Stream"`
}

type stream struct {
	ID           int64  `json:"id"`
	StreamType   int    `json:"streamType"`
	Codec        string `json:"codec"`
	Language     string `json:"language"`
	DisplayTitle string `json:"displayTitle"`
	Channels     int    `json:"channels"`
	Selected     bool   `json:"selected"`
	Default      bool   `json:"default"`
}

// resource is one entry of plex.tv /api/v2/resources.
type resource struct {
	Name             string               `json:"name"`
	Product          string               `json:"product"`
	ProductVersion   string               `json:"productVersion"`
	Platform         string               `json:"platform"`
	PlatformVersion  string               `json:"platformVersion"`
	Device           string               `json:"device"`
	ClientIdentifier string               `json:"clientIdentifier"`
	Provides         string               `json:"provides"`
	Owned            bool                 `json:"owned"`
	Presence         bool                 `json:"presence"`
	AccessToken      string               `json:"accessToken"`
	Connections      []resourceConnection `json:"connections"`
}

type resourceConnection struct {
	Protocol string `json:"protocol"`
	Address  string `json:"address"`
	Port     int    `json:"port"`
	URI      string `json:"uri"`
	Local    bool   `json:"local"`
	Relay    bool   `json:"relay"`
	IPv6     bool   `json:"IPv6"`
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func mapAll[T any](in []metadata, fn func(metadata) T) []T {
	out := make([]T, 0, len(in))
	for _, m := range in {
		out = append(out, fn(m))
	}
	return out
}

func genres(tags []tag) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Tag)
	}
	return out
}

func mapMedia(in []media) []Media {
	if len(in) == 0 {
		return nil
	}
	out := make([]Media, 0, len(in))
	for _, m := range in {
		parts := make([]Part, 0, len(m.Part))
		for _, p := range m.Part {
			streams := make([]Stream, 0, len(p.Stream))
			for _, s := range p.Stream {
				streams = append(streams, Stream{
					ID:           s.ID,
					Kind:         StreamKind(s.StreamType),
					Codec:        s.Codec,
					Language:     s.Language,
					DisplayTitle: s.DisplayTitle,
					Channels:     s.Channels,
					Selected:     s.Selected,
					Default:      s.Default,
				})
			}
			parts = append(parts, Part{
				ID:        p.ID,
				Key:       p.Key,
				Duration:  millis(p.Duration),
				File:      p.File,
				Size:      p.Size,
				Container: p.Container,
				Streams:   streams,
			})
		}
		out = append(out, Media{
			ID:              m.ID,
			Duration:        millis(m.Duration),
			Bitrate:         m.Bitrate,
			Container:       m.Container,
			AudioCodec:      m.AudioCodec,
			AudioChannels:   m.AudioChannels,
			VideoCodec:      m.VideoCodec,
			VideoResolution: m.VideoResolution,
			Width:           m.Width,
			Height:          m.Height,
			Parts:           parts,
		})
	}
	return out
}

func mapArtist(m metadata) Artist {
	return Artist{
		ID:      m.RatingKey,
		Title:   m.Title,
		Summary: m.Summary,
		Thumb:   m.Thumb,
		Art:     m.Art,
		Genres:  genres(m.Genre),
	}
}

func mapAlbum(m metadata) Album {
	return Album{
		ID:         m.RatingKey,
		Title:      m.Title,
		ArtistID:   m.ParentRatingKey,
		ArtistName: m.ParentTitle,
		Summary:    m.Summary,
		Thumb:      m.Thumb,
		Art:        m.Art,
		Year:       m.Year,
		TrackCount: m.LeafCount,
	}
}

func mapTrack(m metadata) Track {
	return Track{
		ID:         m.RatingKey,
		Title:      m.Title,
		AlbumID:    m.ParentRatingKey,
		AlbumTitle: m.ParentTitle,
		ArtistID:   m.GrandparentRatingKey,
		ArtistName: m.GrandparentTitle,
		Thumb:      m.Thumb,
		Index:      m.Index,
		DiscNumber: m.ParentIndex,
		Duration:   millis(m.Duration),
		ViewOffset: millis(m.ViewOffset),
		ViewCount:  m.ViewCount,
		Media:      mapMedia(m.Media),
	}
}

func mapMovie(m metadata) Movie {
	return Movie{
		ID:            m.RatingKey,
		Title:         m.Title,
		Summary:       m.Summary,
		Thumb:         m.Thumb,
		Art:           m.Art,
		ContentRating: m.ContentRating,
		Studio:        m.Studio,
		Year:          m.Year,
		Duration:      millis(m.Duration),
		ViewOffset:    millis(m.ViewOffset),
		ViewCount:     m.ViewCount,
		Genres:        genres(m.Genre),
		Media:         mapMedia(m.Media),
	}
}

func mapShow(m metadata) Show {
	return Show{
		ID:              m.RatingKey,
		Title:           m.Title,
		Summary:         m.Summary,
		Thumb:           m.Thumb,
		Art:             m.Art,
		ContentRating:   m.ContentRating,
		Year:            m.Year,
		SeasonCount:     m.ChildCount,
		EpisodeCount:    m.LeafCount,
		WatchedEpisodes: m.ViewedLeafCount,
	}
}

func mapSeason(m metadata) Season {
	return Season{
		ID:              m.RatingKey,
		Title:           m.Title,
		ShowID:          m.ParentRatingKey,
		ShowTitle:       m.ParentTitle,
		Thumb:           m.Thumb,
		Index:           m.Index,
		EpisodeCount:    m.LeafCount,
		WatchedEpisodes: m.ViewedLeafCount,
	}
}

func mapEpisode(m metadata) Episode {
	return Episode{
		ID:          m.RatingKey,
		Title:       m.Title,
		Summary:     m.Summary,
		ShowID:      m.GrandparentRatingKey,
		ShowTitle:   m.GrandparentTitle,
		SeasonID:    m.ParentRatingKey,
		Thumb:       m.Thumb,
		Index:       m.Index,
		SeasonIndex: m.ParentIndex,
		Duration:    millis(m.Duration),
		ViewOffset:  millis(m.ViewOffset),
		ViewCount:   m.ViewCount,
		Media:       mapMedia(m.Media),
	}
}

func mapPlaylist(m metadata) Playlist {
	thumb := m.Composite
	if thumb == "" {
		thumb = m.Thumb
	}
	return Playlist{
		ID:        m.RatingKey,
		Title:     m.Title,
		Type:      m.PlaylistType,
		Thumb:     thumb,
		Smart:     m.Smart,
		ItemCount: m.LeafCount,
		Duration:  millis(m.Duration),
	}
}

func mapLibrary(d directory) Library {
	return Library{
		ID:    d.Key,
		UUID:  d.UUID,
		Title: d.Title,
		Type:  LibraryType(d.Type),
		Agent: d.Agent,
		Thumb: d.Thumb,
	}
}

func mapServer(r resource) Server {
	conns := make([]Connection, 0, len(r.Connections))
	for _, c := range r.Connections {
		conns = append(conns, Connection{
			URI:      c.URI,
			Protocol: c.Protocol,
			Address:  c.Address,
			Port:     c.Port,
			Local:    c.Local,
			Relay:    c.Relay,
			IPv6:     c.IPv6,
			URL:      parseConnectionURL(c.URI),
		})
	}
	return Server{
		ID:              r.ClientIdentifier,
		Name:            r.Name,
		Product:         r.Product,
		ProductVersion:  r.ProductVersion,
		Platform:        r.Platform,
		PlatformVersion: r.PlatformVersion,
		Device:          r.Device,
		Owned:           r.Owned,
		Presence:        r.Presence,
		AccessToken:     r.AccessToken,
		Connections:     conns,
	}
}

// parseConnectionURL returns nil unless uri is an absolute http(s) URL.
func parseConnectionURL(uri string) *url.URL {
	u, err := url.Parse(uri)
	if err != nil || u.Host == "" {
		return nil
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}
	return u
}

// NewConnection builds a Connection from a URI, parsing its URL.
func NewConnection(uri string, local, relay bool) Connection {
	u := parseConnectionURL(uri)
	c := Connection{URI: uri, Local: local, Relay: relay, URL: u}
	if u != nil {
		c.Protocol = u.Scheme
		c.Address = u.Hostname()
	}
	return c
}
