package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/plex"
)

var artistsCmd = &cobra.Command{
	Use:   "artists",
	Short: "List artists in the selected music library",
	Args:  cobra.NoArgs,
	RunE:  runArtistsCmd,
}

var albumsCmd = &cobra.Command{
	Use:   "albums [artist-id]",
	Short: "List albums, optionally for one artist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAlbumsCmd,
}

var tracksCmd = &cobra.Command{
	Use:   "tracks [album-id]",
	Short: "List tracks of an album, a playlist or the whole library",
	Long: `List tracks.

With an album id, lists that album. With --playlist, lists a playlist.
Without either, lists every track in the selected music library.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTracksCmd,
}

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List movies in the selected movie library",
	Args:  cobra.NoArgs,
	RunE:  runMoviesCmd,
}

var showsCmd = &cobra.Command{
	Use:   "shows [show-id [season-id]]",
	Short: "List shows, a show's seasons, or a season's episodes",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runShowsCmd,
}

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List the server's playlists",
	Args:  cobra.NoArgs,
	RunE:  runPlaylistsCmd,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search the selected library",
	Long: `Search the server, scoped to the selected library.

Examples:
  plexdeck search boards of canada
  plexdeck search --limit 5 "the wire"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

var radioCmd = &cobra.Command{
	Use:   "radio <track|artist|album> <id>",
	Short: "Build a radio queue of similar music",
	Args:  cobra.ExactArgs(2),
	RunE:  runRadioCmd,
}

var filterCmd = &cobra.Command{
	Use:   "filter <query>...",
	Short: "Rank cached library content by title without a server call",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFilterCmd,
}

func init() {
	rootCmd.AddCommand(artistsCmd, albumsCmd, tracksCmd, moviesCmd, showsCmd,
		playlistsCmd, searchCmd, radioCmd, filterCmd)

	for _, c := range []*cobra.Command{artistsCmd, albumsCmd, tracksCmd, moviesCmd, showsCmd} {
		c.Flags().IntP("limit", "n", 0, "Show at most n items (0 for all)")
	}
	tracksCmd.Flags().String("playlist", "", "List the tracks of this playlist")
	playlistsCmd.Flags().Bool("all", false, "Include video and photo playlists")
	searchCmd.Flags().IntP("limit", "n", 10, "Results per type")
	radioCmd.Flags().IntP("limit", "n", 50, "Queue length")
}

func limitFlag(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetInt("limit")
	return n
}

func head[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// list prints items as JSON or as one line each.
func list[T any](w io.Writer, items []T, empty string, line func(T) string) error {
	if jsonOutput {
		if items == nil {
			items = []T{}
		}
		return printJSON(w, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(w, empty)
		return nil
	}
	for _, it := range items {
		fmt.Fprintln(w, line(it))
	}
	return nil
}

func artistLine(a plex.Artist) string {
	return fmt.Sprintf("%8s  %s", a.ID, a.Title)
}

func albumLine(a plex.Album) string {
	year := ""
	if a.Year > 0 {
		year = fmt.Sprintf(" (%d)", a.Year)
	}
	return fmt.Sprintf("%8s  %s - %s%s", a.ID, truncate(a.ArtistName, 30), a.Title, year)
}

func trackLine(t plex.Track) string {
	return fmt.Sprintf("%8s  %2d. %-40s %s  %s", t.ID, t.Index, truncate(t.Title, 40), formatDuration(t.Duration), t.ArtistName)
}

func movieLine(m plex.Movie) string {
	return fmt.Sprintf("%8s  %-40s %4d  %s", m.ID, truncate(m.Title, 40), m.Year, formatDuration(m.Duration))
}

func showLine(s plex.Show) string {
	return fmt.Sprintf("%8s  %-40s %d seasons, %d/%d watched", s.ID, truncate(s.Title, 40), s.SeasonCount, s.WatchedEpisodes, s.EpisodeCount)
}

func seasonLine(s plex.Season) string {
	return fmt.Sprintf("%8s  %-24s %d/%d watched", s.ID, s.Title, s.WatchedEpisodes, s.EpisodeCount)
}

func episodeLine(e plex.Episode) string {
	return fmt.Sprintf("%8s  S%02dE%02d %-40s %s", e.ID, e.SeasonIndex, e.Index, truncate(e.Title, 40), formatDuration(e.Duration))
}

func runArtistsCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		artists, err := a.session.Artists(ctx)
		if err != nil {
			return err
		}
		return list(cmd.OutOrStdout(), head(artists, limitFlag(cmd)), "No artists", artistLine)
	})
}

func runAlbumsCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		var albums []plex.Album
		var err error
		if len(args) == 1 {
			albums, err = a.session.ArtistAlbums(ctx, args[0])
		} else {
			albums, err = a.session.Albums(ctx)
		}
		if err != nil {
			return err
		}
		return list(cmd.OutOrStdout(), head(albums, limitFlag(cmd)), "No albums", albumLine)
	})
}

func runTracksCmd(cmd *cobra.Command, args []string) error {
	playlist, _ := cmd.Flags().GetString("playlist")
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		var tracks []plex.Track
		var err error
		switch {
		case playlist != "":
			tracks, err = a.session.PlaylistTracks(ctx, playlist)
		case len(args) == 1:
			tracks, err = a.session.AlbumTracks(ctx, args[0])
		default:
			tracks, err = a.session.Tracks(ctx)
		}
		if err != nil {
			return err
		}
		return list(cmd.OutOrStdout(), head(tracks, limitFlag(cmd)), "No tracks", trackLine)
	})
}

func runMoviesCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		movies, err := a.session.Movies(ctx)
		if err != nil {
			return err
		}
		return list(cmd.OutOrStdout(), head(movies, limitFlag(cmd)), "No movies", movieLine)
	})
}

func runShowsCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		out := cmd.OutOrStdout()
		n := limitFlag(cmd)
		switch len(args) {
		case 2:
			episodes, err := a.session.SeasonEpisodes(ctx, args[1])
			if err != nil {
				return err
			}
			return list(out, head(episodes, n), "No episodes", episodeLine)
		case 1:
			seasons, err := a.session.ShowSeasons(ctx, args[0])
			if err != nil {
				return err
			}
			return list(out, head(seasons, n), "No seasons", seasonLine)
		}
		shows, err := a.session.Shows(ctx)
		if err != nil {
			return err
		}
		return list(out, head(shows, n), "No shows", showLine)
	})
}

func runPlaylistsCmd(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		playlists, err := a.session.Playlists(ctx, !all)
		if err != nil {
			return err
		}
		return list(cmd.OutOrStdout(), playlists, "No playlists", func(p plex.Playlist) string {
			smart := ""
			if p.Smart {
				smart = " (smart)"
			}
			return fmt.Sprintf("%8s  %-32s %-6s %4d items%s", p.ID, truncate(p.Title, 32), p.Type, p.ItemCount, smart)
		})
	})
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		results, err := a.session.Search(ctx, query, limitFlag(cmd))
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, results)
		}
		if results.Empty() {
			fmt.Fprintf(out, "No results for %q\n", query)
			return nil
		}
		section(out, "Artists", results.Artists, artistLine)
		section(out, "Albums", results.Albums, albumLine)
		section(out, "Tracks", results.Tracks, trackLine)
		section(out, "Movies", results.Movies, movieLine)
		section(out, "Shows", results.Shows, showLine)
		section(out, "Episodes", results.Episodes, episodeLine)
		return nil
	})
}

func section[T any](w io.Writer, title string, items []T, line func(T) string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", title, len(items))
	for _, it := range items {
		fmt.Fprintln(w, line(it))
	}
	fmt.Fprintln(w)
}

func runRadioCmd(cmd *cobra.Command, args []string) error {
	kind, id := strings.ToLower(args[0]), args[1]
	limit := limitFlag(cmd)
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		var tracks []plex.Track
		var err error
		switch kind {
		case "track":
			tracks, err = a.session.TrackRadio(ctx, id, limit)
		case "artist":
			tracks, err = a.session.ArtistRadio(ctx, id, limit)
		case "album":
			tracks, err = a.session.AlbumRadio(ctx, id, limit)
		default:
			return fmt.Errorf("unknown radio seed %q: use track, artist or album", args[0])
		}
		if err != nil {
			return fmt.Errorf("radio failed: %w", err)
		}
		return list(cmd.OutOrStdout(), tracks, "No similar music found", trackLine)
	})
}

func runFilterCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		results := a.session.FilterCached(query)
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, results)
		}
		section(out, "Artists", results.Artists, artistLine)
		section(out, "Albums", results.Albums, albumLine)
		section(out, "Movies", results.Movies, movieLine)
		section(out, "Shows", results.Shows, showLine)
		if len(results.Artists)+len(results.Albums)+len(results.Movies)+len(results.Shows) == 0 {
			fmt.Fprintf(out, "Nothing cached matches %q\n", query)
		}
		return nil
	})
}
