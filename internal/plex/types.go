// Package plex talks to plex.tv (account linking, server discovery) and to
// Plex Media Server (library browsing, streaming, playback reporting).
package plex

import (
	"net/url"
	"time"
)

// Pin is a device-pairing code created on plex.tv.
type Pin struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
	AuthToken string    `json:"authToken"`
}

// Authorized reports whether the user has claimed the pin.
func (p Pin) Authorized() bool {
	return p.AuthToken != ""
}

// Account is the linked plex.tv user.
type Account struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Thumb     string `json:"thumb"`
	AuthToken string `json:"authToken"`
}

// Server is a Plex Media Server advertised by plex.tv.
type Server struct {
	ID              string
	Name            string
	Product         string
	ProductVersion  string
	Platform        string
	PlatformVersion string
	Device          string
	Owned           bool
	Presence        bool
	AccessToken     string
	Connections     []Connection
}

// Usable reports whether at least one connection has a parsed URL.
func (s Server) Usable() bool {
	for _, c := range s.Connections {
		if c.URL != nil {
			return true
		}
	}
	return false
}

// Connection is one candidate network path to a server.
type Connection struct {
	URI      string
	Protocol string
	Address  string
	Port     int
	Local    bool
	Relay    bool
	IPv6     bool
	URL      *url.URL // nil when URI does not parse
}

// Kind names the path class for diagnostics.
func (c Connection) Kind() string {
	switch {
	case c.Relay:
		return "relay"
	case c.Local:
		return "local"
	default:
		return "remote"
	}
}

// Identity is the root response of a server.
type Identity struct {
	MachineIdentifier string
	Name              string
	Version           string
}

// LibraryType is the section type reported by the server.
type LibraryType string

const (
	LibraryMusic LibraryType = "artist"
	LibraryMovie LibraryType = "movie"
	LibraryShow  LibraryType = "show"
)

func (t LibraryType) String() string {
	if t == LibraryMusic {
		return "music"
	}
	return string(t)
}

// Library is a library section.
type Library struct {
	ID    string
	UUID  string
	Title string
	Type  LibraryType
	Agent string
	Thumb string
}

// ContentType is the metadata type discriminator used by /library/sections/{id}/all.
type ContentType int

const (
	TypeMovie   ContentType = 1
	TypeShow    ContentType = 2
	TypeSeason  ContentType = 3
	TypeEpisode ContentType = 4
	TypeArtist  ContentType = 8
	TypeAlbum   ContentType = 9
	TypeTrack   ContentType = 10
)

// Page selects a slice of a listing.
type Page struct {
	Offset int
	Limit  int
}

// Media is one version of a playable item.
type Media struct {
	ID              int64
	Duration        time.Duration
	Bitrate         int
	Container       string
	AudioCodec      string
	AudioChannels   int
	VideoCodec      string
	VideoResolution string
	Width           int
	Height          int
	Parts           []Part
}

// Part is a file belonging to a media version.
type Part struct {
	ID        int64
	Key       string // path used to stream the part
	Duration  time.Duration
	File      string
	Size      int64
	Container string
	Streams   []Stream
}

// StreamKind is the Plex streamType code.
type StreamKind int

const (
	StreamVideo    StreamKind = 1
	StreamAudio    StreamKind = 2
	StreamSubtitle StreamKind = 3
)

// Stream is an elementary stream inside a part.
type Stream struct {
	ID           int64
	Kind         StreamKind
	Codec        string
	Language     string
	DisplayTitle string
	Channels     int
	Selected     bool
	Default      bool
}

func partKey(media []Media) string {
	for _, m := range media {
		for _, p := range m.Parts {
			if p.Key != "" {
				return p.Key
			}
		}
	}
	return ""
}

// Artist is a music artist.
type Artist struct {
	ID      string
	Title   string
	Summary string
	Thumb   string
	Art     string
	Genres  []string
}

// Album is a music album.
type Album struct {
	ID         string
	Title      string
	ArtistID   string
	ArtistName string
	Summary    string
	Thumb      string
	Art        string
	Year       int
	TrackCount int
}

// Track is a music track.
type Track struct {
	ID         string
	Title      string
	AlbumID    string
	AlbumTitle string
	ArtistID   string
	ArtistName string
	Thumb      string
	Index      int
	DiscNumber int
	Duration   time.Duration
	ViewOffset time.Duration
	ViewCount  int
	Media      []Media
}

// PartKey returns the stream path of the first playable part.
func (t Track) PartKey() string { return partKey(t.Media) }

// Movie is a film.
type Movie struct {
	ID            string
	Title         string
	Summary       string
	Thumb         string
	Art           string
	ContentRating string
	Studio        string
	Year          int
	Duration      time.Duration
	ViewOffset    time.Duration
	ViewCount     int
	Genres        []string
	Media         []Media
}

// PartKey returns the stream path of the first playable part.
func (m Movie) PartKey() string { return partKey(m.Media) }

// Show is a TV series.
type Show struct {
	ID              string
	Title           string
	Summary         string
	Thumb           string
	Art             string
	ContentRating   string
	Year            int
	SeasonCount     int
	EpisodeCount    int
	WatchedEpisodes int
}

// Season is one season of a show.
type Season struct {
	ID              string
	Title           string
	ShowID          string
	ShowTitle       string
	Thumb           string
	Index           int
	EpisodeCount    int
	WatchedEpisodes int
}

// Episode is one episode of a season.
type Episode struct {
	ID          string
	Title       string
	Summary     string
	ShowID      string
	ShowTitle   string
	SeasonID    string
	Thumb       string
	Index       int
	SeasonIndex int
	Duration    time.Duration
	ViewOffset  time.Duration
	ViewCount   int
	Media       []Media
}

// PartKey returns the stream path of the first playable part.
func (e Episode) PartKey() string { return partKey(e.Media) }

// Playlist is a server-side playlist.
type Playlist struct {
	ID        string
	Title     string
	Type      string // audio, video, photo
	Thumb     string
	Smart     bool
	ItemCount int
	Duration  time.Duration
}

// SearchResults groups the hubs of one search call.
type SearchResults struct {
	Artists  []Artist
	Albums   []Album
	Tracks   []Track
	Movies   []Movie
	Shows    []Show
	Episodes []Episode
}

// Empty reports whether no bucket has results.
func (r SearchResults) Empty() bool {
	return len(r.Artists)+len(r.Albums)+len(r.Tracks)+len(r.Movies)+len(r.Shows)+len(r.Episodes) == 0
}
