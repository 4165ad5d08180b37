package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/playback"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/session"
)

var streamURLCmd = &cobra.Command{
	Use:   "stream-url <item-id|part-key>",
	Short: "Print an authenticated stream URL",
	Long: `Print the direct-play URL for an item.

The argument is an item id from the selected library, or a part key
starting with "/" as returned by the server.

Examples:
  plexdeck stream-url 301
  plexdeck stream-url /library/parts/19/1700000000/file.flac
  mpv "$(plexdeck stream-url 301)"`,
	Args: cobra.ExactArgs(1),
	RunE: runStreamURLCmd,
}

var scrobbleCmd = &cobra.Command{
	Use:   "scrobble <item-id>",
	Short: "Mark an item played",
	Args:  cobra.ExactArgs(1),
	RunE:  runScrobbleCmd,
}

var unscrobbleCmd = &cobra.Command{
	Use:   "unscrobble <item-id>",
	Short: "Mark an item unplayed",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnscrobbleCmd,
}

var resumeCmd = &cobra.Command{
	Use:   "resume <item-id> <position>",
	Short: "Set an item's resume position (e.g. 12m30s)",
	Args:  cobra.ExactArgs(2),
	RunE:  runResumeCmd,
}

func init() {
	rootCmd.AddCommand(streamURLCmd, scrobbleCmd, unscrobbleCmd, resumeCmd)
	streamURLCmd.Flags().Bool("headers", false, "Also print the headers a player must send")
	streamURLCmd.Flags().String("type", "", typeFlagUsage)
}

const typeFlagUsage = "Item type: track, movie or episode (default: from the library)"

// playable is an item that can be streamed and reported on.
type playable struct {
	Item       playback.Item
	PartKey    string
	ViewOffset time.Duration
}

// itemKind picks the lookup for an item id from the --type flag, else from
// the selected library.
func itemKind(flag string, lib *plex.Library) (string, error) {
	if flag != "" {
		switch k := strings.ToLower(flag); k {
		case "track", "movie", "episode":
			return k, nil
		}
		return "", fmt.Errorf("unknown item type %q: use track, movie or episode", flag)
	}
	if lib == nil {
		return "", session.ErrNoLibrarySelected
	}
	switch lib.Type {
	case plex.LibraryMovie:
		return "movie", nil
	case plex.LibraryShow:
		return "episode", nil
	}
	return "track", nil
}

func lookupPlayable(ctx context.Context, m *session.Manager, kind, id string) (playable, error) {
	switch kind {
	case "movie":
		mv, err := m.Movie(ctx, id)
		if err != nil {
			return playable{}, err
		}
		return playable{
			Item:       playback.Item{ID: mv.ID, Title: mv.Title, Duration: mv.Duration, MediaType: plex.MediaVideo},
			PartKey:    mv.PartKey(),
			ViewOffset: mv.ViewOffset,
		}, nil
	case "episode":
		ep, err := m.Episode(ctx, id)
		if err != nil {
			return playable{}, err
		}
		title := fmt.Sprintf("%s S%02dE%02d %s", ep.ShowTitle, ep.SeasonIndex, ep.Index, ep.Title)
		return playable{
			Item:       playback.Item{ID: ep.ID, Title: title, Duration: ep.Duration, MediaType: plex.MediaVideo},
			PartKey:    ep.PartKey(),
			ViewOffset: ep.ViewOffset,
		}, nil
	}
	tr, err := m.Track(ctx, id)
	if err != nil {
		return playable{}, err
	}
	return playable{
		Item:       playback.Item{ID: tr.ID, Title: tr.ArtistName + " - " + tr.Title, Duration: tr.Duration, MediaType: plex.MediaMusic},
		PartKey:    tr.PartKey(),
		ViewOffset: tr.ViewOffset,
	}, nil
}

func runStreamURLCmd(cmd *cobra.Command, args []string) error {
	typeFlag, _ := cmd.Flags().GetString("type")
	withHeaders, _ := cmd.Flags().GetBool("headers")
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		partKey := args[0]
		if !strings.HasPrefix(partKey, "/") {
			kind, err := itemKind(typeFlag, a.session.Status().Library)
			if err != nil {
				return err
			}
			p, err := lookupPlayable(ctx, a.session, kind, args[0])
			if err != nil {
				return err
			}
			partKey = p.PartKey
		}

		u, err := a.session.StreamURL(partKey)
		if err != nil {
			return err
		}
		headers, err := a.session.StreamHeaders()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			h := make(map[string]string, len(headers))
			for k := range headers {
				h[k] = headers.Get(k)
			}
			return printJSON(out, map[string]any{"url": u, "headers": h})
		}
		fmt.Fprintln(out, u)
		if withHeaders {
			for k := range headers {
				fmt.Fprintf(out, "%s: %s\n", k, headers.Get(k))
			}
		}
		return nil
	})
}

func runScrobbleCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		if err := a.session.MarkPlayed(ctx, args[0]); err != nil {
			return fmt.Errorf("scrobble failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %s played\n", args[0])
		return nil
	})
}

func runUnscrobbleCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		if err := a.session.MarkUnplayed(ctx, args[0]); err != nil {
			return fmt.Errorf("unscrobble failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %s unplayed\n", args[0])
		return nil
	})
}

func runResumeCmd(cmd *cobra.Command, args []string) error {
	pos, err := time.ParseDuration(args[1])
	if err != nil || pos < 0 {
		return fmt.Errorf("invalid position %q", args[1])
	}
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		if err := a.session.SetResumePosition(ctx, args[0], pos); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Resume %s at %s\n", args[0], formatDuration(pos))
		return nil
	})
}
