package plex

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerClient_Libraries(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections", r.URL.Path)
		writeJSON(t, w, map[string]any{"MediaContainer": map[string]any{
			"Directory": []item{
				{"key": "1", "uuid": "u1", "title": "Movies", "type": "movie", "agent": "tv.plex.agents.movie"},
				{"key": "2", "title": "Music", "type": "artist"},
				{"key": "3", "title": "TV", "type": "show"},
			},
		}})
	})

	libs, err := client.Libraries(context.Background())
	require.NoError(t, err)
	require.Len(t, libs, 3)
	assert.Equal(t, Library{ID: "1", UUID: "u1", Title: "Movies", Type: LibraryMovie, Agent: "tv.plex.agents.movie"}, libs[0])
	assert.Equal(t, LibraryMusic, libs[1].Type)
	assert.Equal(t, "music", libs[1].Type.String())
	assert.Equal(t, LibraryShow, libs[2].Type)
}

func TestServerClient_Artists_PageAndFilters(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/library/sections/5/all", r.URL.Path)
		assert.Equal(t, "8", q.Get("type"))
		assert.Equal(t, "20", q.Get("X-Plex-Container-Start"))
		assert.Equal(t, "10", q.Get("X-Plex-Container-Size"))
		assert.Equal(t, "titleSort", q.Get("sort"))
		assert.Equal(t, "Rock", q.Get("genre"))

		writeContainer(t, w, []item{
			{"ratingKey": "100", "title": "Boards of Canada", "thumb": "/library/metadata/100/thumb/1", "Genre": []item{{"tag": "Electronic"}}},
		})
	})

	artists, err := client.Artists(context.Background(), "5", Page{Offset: 20, Limit: 10}, SortBy("titleSort"), Filter("genre", "Rock"))
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "100", artists[0].ID)
	assert.Equal(t, "Boards of Canada", artists[0].Title)
	assert.Equal(t, []string{"Electronic"}, artists[0].Genres)
}

func TestServerClient_ListWithoutLimitOmitsPaging(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("X-Plex-Container-Size"))
		assert.Equal(t, "1", r.URL.Query().Get("type"))
		writeContainer(t, w, nil)
	})

	movies, err := client.Movies(context.Background(), "1", Page{})
	require.NoError(t, err)
	assert.Empty(t, movies)
}

// pagedTracks serves total tracks in pages and records each requested page.
func pagedTracks(t *testing.T, total int, mu *sync.Mutex, pages *[][2]int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		start, err := strconv.Atoi(q.Get("X-Plex-Container-Start"))
		assert.NoError(t, err)
		size, err := strconv.Atoi(q.Get("X-Plex-Container-Size"))
		assert.NoError(t, err)

		mu.Lock()
		*pages = append(*pages, [2]int{start, size})
		mu.Unlock()

		var items []item
		for i := start; i < start+size && i < total; i++ {
			items = append(items, item{"ratingKey": strconv.Itoa(i), "title": fmt.Sprintf("Track %d", i)})
		}
		writeContainer(t, w, items)
	}
}

func TestServerClient_AllTracks_ShortPageTermination(t *testing.T) {
	var mu sync.Mutex
	var pages [][2]int
	client, _ := newTestServerClient(t, pagedTracks(t, 250, &mu, &pages))

	tracks, err := client.AllTracks(context.Background(), "2")
	require.NoError(t, err)
	require.Len(t, tracks, 250)
	for i, tr := range tracks {
		require.Equal(t, strconv.Itoa(i), tr.ID)
	}
	assert.Equal(t, [][2]int{{0, 100}, {100, 100}, {200, 100}}, pages)
}

func TestServerClient_AllArtists_ExactMultipleNeedsEmptyPage(t *testing.T) {
	var mu sync.Mutex
	var pages [][2]int
	client, _ := newTestServerClient(t, pagedTracks(t, 20, &mu, &pages), WithPageSize(10))

	artists, err := client.AllArtists(context.Background(), "2")
	require.NoError(t, err)
	assert.Len(t, artists, 20)
	assert.Len(t, pages, 3)
}

func TestServerClient_AllTracks_PropagatesError(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		items := make([]item, 100)
		for i := range items {
			items[i] = item{"ratingKey": strconv.Itoa(i)}
		}
		writeContainer(t, w, items)
	})

	tracks, err := client.AllTracks(context.Background(), "2")
	require.Error(t, err)
	assert.Nil(t, tracks)
}

func TestServerClient_AlbumTracks(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/metadata/300/children", r.URL.Path)
		writeContainer(t, w, []item{{
			"ratingKey":            "301",
			"title":                "Roygbiv",
			"index":                2,
			"parentIndex":          1,
			"parentRatingKey":      "300",
			"parentTitle":          "Music Has the Right to Children",
			"grandparentRatingKey": "100",
			"grandparentTitle":     "Boards of Canada",
			"duration":             150000,
			"viewOffset":           30000,
			"Media": []item{{
				"id":         9,
				"container":  "flac",
				"audioCodec": "flac",
				"Part": []item{{
					"id":     19,
					"key":    "/library/parts/19/1700000000/file.flac",
					"Stream": []item{{"id": 1, "streamType": 2, "codec": "flac", "channels": 2, "selected": true}},
				}},
			}},
		}})
	})

	tracks, err := client.AlbumTracks(context.Background(), "300")
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	tr := tracks[0]
	assert.Equal(t, "301", tr.ID)
	assert.Equal(t, "300", tr.AlbumID)
	assert.Equal(t, "Boards of Canada", tr.ArtistName)
	assert.Equal(t, 1, tr.DiscNumber)
	assert.Equal(t, 150*time.Second, tr.Duration)
	assert.Equal(t, 30*time.Second, tr.ViewOffset)
	assert.Equal(t, "/library/parts/19/1700000000/file.flac", tr.PartKey())
	require.Len(t, tr.Media[0].Parts[0].Streams, 1)
	assert.Equal(t, StreamAudio, tr.Media[0].Parts[0].Streams[0].Kind)
}

func TestServerClient_ShowSeasonsAndEpisodes(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/library/metadata/50/children":
			writeContainer(t, w, []item{{"ratingKey": "51", "title": "Season 1", "index": 1, "parentRatingKey": "50", "leafCount": 10, "viewedLeafCount": 4}})
		case "/library/metadata/51/children":
			writeContainer(t, w, []item{{"ratingKey": "52", "title": "Pilot", "index": 1, "parentIndex": 1, "parentRatingKey": "51", "grandparentRatingKey": "50", "grandparentTitle": "Show"}})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	})

	seasons, err := client.ShowSeasons(context.Background(), "50")
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Equal(t, 10, seasons[0].EpisodeCount)
	assert.Equal(t, 4, seasons[0].WatchedEpisodes)

	episodes, err := client.SeasonEpisodes(context.Background(), "51")
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, "50", episodes[0].ShowID)
	assert.Equal(t, 1, episodes[0].SeasonIndex)
}

func TestServerClient_Movie_NotFound(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/metadata/999", r.URL.Path)
		writeContainer(t, w, nil)
	})

	_, err := client.Movie(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServerClient_Playlists(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlists", r.URL.Path)
		assert.Equal(t, "audio", r.URL.Query().Get("playlistType"))
		writeContainer(t, w, []item{
			{"ratingKey": "70", "title": "Favourites", "playlistType": "audio", "composite": "/playlists/70/composite/1", "smart": true, "leafCount": 42, "duration": 60000},
			{"ratingKey": "71", "title": "Plain", "playlistType": "audio", "thumb": "/thumb/71"},
		})
	})

	playlists, err := client.Playlists(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, playlists, 2)
	assert.Equal(t, "/playlists/70/composite/1", playlists[0].Thumb)
	assert.True(t, playlists[0].Smart)
	assert.Equal(t, 42, playlists[0].ItemCount)
	assert.Equal(t, time.Minute, playlists[0].Duration)
	assert.Equal(t, "/thumb/71", playlists[1].Thumb)
}

func TestServerClient_AllPlaylistTracks(t *testing.T) {
	var mu sync.Mutex
	var pages [][2]int
	inner := pagedTracks(t, 130, &mu, &pages)
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlists/70/items", r.URL.Path)
		inner(w, r)
	})

	tracks, err := client.AllPlaylistTracks(context.Background(), "70")
	require.NoError(t, err)
	assert.Len(t, tracks, 130)
	assert.Len(t, pages, 2)
}
