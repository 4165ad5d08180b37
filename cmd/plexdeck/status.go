package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show account, server and library state",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List the account's media servers",
	Args:  cobra.NoArgs,
	RunE:  runServersCmd,
}

var connectCmd = &cobra.Command{
	Use:   "connect <server>",
	Short: "Connect to a server by id or name",
	Long: `Connect to a server by id or name.

Local connections are tried first, then remote, then relay. The chosen
server is remembered for later runs.

Examples:
  plexdeck connect "Living Room"
  plexdeck connect 8a1f0c2d9e`,
	Args: cobra.ExactArgs(1),
	RunE: runConnectCmd,
}

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "List the connected server's libraries",
	Args:  cobra.NoArgs,
	RunE:  runLibrariesCmd,
}

var selectCmd = &cobra.Command{
	Use:   "select <library>",
	Short: "Select a library by id, title or type",
	Long: `Select the library that content commands browse.

The argument is a library id, a library title, or one of the types
music, movie and show (the first library of that type is chosen).`,
	Args: cobra.ExactArgs(1),
	RunE: runSelectCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd, serversCmd, connectCmd, librariesCmd, selectCmd)
}

// statusView is the JSON shape of a session snapshot.
type statusView struct {
	State      string          `json:"state"`
	Error      string          `json:"error,omitempty"`
	Account    string          `json:"account,omitempty"`
	Server     *serverView     `json:"server,omitempty"`
	Version    string          `json:"server_version,omitempty"`
	Connection *connectionView `json:"connection,omitempty"`
	Library    *libraryView    `json:"library,omitempty"`
	Cached     map[string]int  `json:"cached"`
	Preloading bool            `json:"preloading"`
}

type serverView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Owned       bool             `json:"owned"`
	Online      bool             `json:"online"`
	Current     bool             `json:"current,omitempty"`
	Connections []connectionView `json:"connections,omitempty"`
}

type connectionView struct {
	Kind string `json:"kind"`
	URI  string `json:"uri"`
}

type libraryView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Current bool   `json:"current,omitempty"`
}

func newServerView(s plex.Server, current bool) serverView {
	v := serverView{ID: s.ID, Name: s.Name, Owned: s.Owned, Online: s.Presence, Current: current}
	for _, c := range s.Connections {
		v.Connections = append(v.Connections, connectionView{Kind: c.Kind(), URI: c.URI})
	}
	return v
}

func newLibraryView(l plex.Library, current bool) libraryView {
	return libraryView{ID: l.ID, Title: l.Title, Type: l.Type.String(), Current: current}
}

func newStatusView(st session.Status) statusView {
	v := statusView{
		State: string(st.State),
		Cached: map[string]int{
			"artists": st.CachedArtists,
			"albums":  st.CachedAlbums,
			"movies":  st.CachedMovies,
			"shows":   st.CachedShows,
		},
		Preloading: st.PreloadRunning,
	}
	if st.Cause != nil {
		v.Error = st.Cause.Error()
	}
	if st.Account != nil {
		v.Account = st.Account.Username
	}
	if st.Server != nil {
		s := newServerView(*st.Server, true)
		s.Connections = nil
		v.Server = &s
	}
	if st.Connection != nil {
		v.Connection = &connectionView{Kind: st.Connection.Kind(), URI: st.Connection.URI}
	}
	if st.Library != nil {
		l := newLibraryView(*st.Library, true)
		v.Library = &l
	}
	return v
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupRestore, func(ctx context.Context, a *app) error {
		st := a.session.Status()
		var serverVersion string
		if st.State == session.StateConnected {
			if id, err := a.session.ServerIdentity(ctx); err != nil {
				a.log.Debug("server identity failed", "error", err)
			} else {
				serverVersion = id.Version
			}
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			v := newStatusView(st)
			v.Version = serverVersion
			return printJSON(out, v)
		}
		printStatusHuman(out, st)
		if serverVersion != "" {
			fmt.Fprintf(out, "Version:    %s\n", serverVersion)
		}
		return nil
	})
}

func printStatusHuman(w io.Writer, st session.Status) {
	account := "unknown"
	if st.Account != nil {
		account = st.Account.Username
	}
	fmt.Fprintf(w, "Account:    %s\n", account)
	fmt.Fprintf(w, "State:      %s\n", st.State)
	if st.Cause != nil {
		fmt.Fprintf(w, "Error:      %v\n", st.Cause)
	}
	if st.Server != nil {
		conn := ""
		if st.Connection != nil {
			conn = fmt.Sprintf(" via %s %s", st.Connection.Kind(), st.Connection.URI)
		}
		fmt.Fprintf(w, "Server:     %s%s\n", st.Server.Name, conn)
	}
	if st.Library != nil {
		fmt.Fprintf(w, "Library:    %s (%s)\n", st.Library.Title, st.Library.Type)
	}

	switch {
	case st.CachedArtists > 0 || st.CachedAlbums > 0:
		fmt.Fprintf(w, "Cached:     %d artists, %d albums\n", st.CachedArtists, st.CachedAlbums)
	case st.CachedMovies > 0:
		fmt.Fprintf(w, "Cached:     %d movies\n", st.CachedMovies)
	case st.CachedShows > 0:
		fmt.Fprintf(w, "Cached:     %d shows\n", st.CachedShows)
	}
}

func runServersCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupRestore, func(ctx context.Context, a *app) error {
		st := a.session.Status()
		views := make([]serverView, 0, len(st.Servers))
		for _, s := range st.Servers {
			views = append(views, newServerView(s, st.Server != nil && st.Server.ID == s.ID))
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, views)
		}
		if len(views) == 0 {
			fmt.Fprintln(out, "No servers")
			return nil
		}
		for _, v := range views {
			marker := " "
			if v.Current {
				marker = "*"
			}
			online := "offline"
			if v.Online {
				online = "online"
			}
			fmt.Fprintf(out, "%s %-24s %-12s %s\n", marker, truncate(v.Name, 24), v.ID, online)
			for _, c := range v.Connections {
				fmt.Fprintf(out, "    %-6s %s\n", c.Kind, c.URI)
			}
		}
		return nil
	})
}

// resolveServer finds a server by exact id, else by case-insensitive name.
func resolveServer(servers []plex.Server, arg string) (plex.Server, bool) {
	for _, s := range servers {
		if s.ID == arg {
			return s, true
		}
	}
	for _, s := range servers {
		if strings.EqualFold(s.Name, arg) {
			return s, true
		}
	}
	return plex.Server{}, false
}

func runConnectCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupRestore, func(ctx context.Context, a *app) error {
		server, ok := resolveServer(a.session.Status().Servers, args[0])
		if !ok {
			return fmt.Errorf("%w: %s", session.ErrUnknownServer, args[0])
		}
		if err := a.session.ConnectServer(ctx, server.ID); err != nil {
			return err
		}
		a.session.Wait()

		st := a.session.Status()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), newStatusView(st))
		}
		printStatusHuman(cmd.OutOrStdout(), st)
		return nil
	})
}

func runLibrariesCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		st := a.session.Status()
		views := make([]libraryView, 0, len(st.Libraries))
		for _, l := range st.Libraries {
			views = append(views, newLibraryView(l, st.Library != nil && st.Library.ID == l.ID))
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, views)
		}
		if len(views) == 0 {
			fmt.Fprintln(out, "No libraries")
			return nil
		}
		for _, v := range views {
			marker := " "
			if v.Current {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %4s  %-28s %s\n", marker, v.ID, truncate(v.Title, 28), v.Type)
		}
		return nil
	})
}

// parseLibraryType maps the user-facing type names onto server section types.
func parseLibraryType(s string) (plex.LibraryType, bool) {
	switch strings.ToLower(s) {
	case "music", "artist":
		return plex.LibraryMusic, true
	case "movie", "movies":
		return plex.LibraryMovie, true
	case "show", "shows", "tv":
		return plex.LibraryShow, true
	}
	return "", false
}

func runSelectCmd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		arg := args[0]
		var err error
		if t, ok := parseLibraryType(arg); ok {
			err = a.session.SelectLibraryOfType(ctx, t)
		} else {
			id := arg
			for _, l := range a.session.Status().Libraries {
				if strings.EqualFold(l.Title, arg) {
					id = l.ID
					break
				}
			}
			err = a.session.SelectLibrary(ctx, id)
		}
		if err != nil {
			return err
		}

		lib := a.session.Status().Library
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), newLibraryView(*lib, true))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Selected %s (%s)\n", lib.Title, lib.Type)
		return nil
	})
}
