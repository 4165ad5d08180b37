package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/events"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent events",
	Long: `Show events recorded by earlier runs: links, connections, library
selections and playback.

Examples:
  plexdeck events -n 50
  plexdeck events --entity item/301
  plexdeck events --since 2h
  plexdeck events --prune 720h`,
	Args: cobra.NoArgs,
	RunE: runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsCmd.Flags().String("entity", "", "Only events for one entity, as type/id")
	eventsCmd.Flags().Duration("since", 0, "Only events newer than this")
	eventsCmd.Flags().Duration("prune", 0, "Delete events older than this and exit")
}

// eventView is the JSON shape of a logged event.
type eventView struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Event      any       `json:"event,omitempty"`
}

func runEventsCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	entity, _ := cmd.Flags().GetString("entity")
	since, _ := cmd.Flags().GetDuration("since")
	prune, _ := cmd.Flags().GetDuration("prune")

	return withApp(cmd, setupNone, func(ctx context.Context, a *app) error {
		out := cmd.OutOrStdout()
		if prune > 0 {
			n, err := a.eventLog.Prune(ctx, prune)
			if err != nil {
				return fmt.Errorf("prune events: %w", err)
			}
			fmt.Fprintf(out, "Pruned %d events\n", n)
			return nil
		}

		raw, err := queryEvents(ctx, a.eventLog, entity, since, limit)
		if err != nil {
			return fmt.Errorf("failed to fetch events: %w", err)
		}

		if jsonOutput {
			reg := events.DefaultRegistry()
			views := make([]eventView, 0, len(raw))
			for _, e := range raw {
				v := eventView{ID: e.ID, Type: e.EventType, EntityType: e.EntityType, EntityID: e.EntityID, OccurredAt: e.OccurredAt}
				if decoded, err := reg.Unmarshal(e); err == nil {
					v.Event = decoded
				}
				views = append(views, v)
			}
			return printJSON(out, views)
		}

		if len(raw) == 0 {
			fmt.Fprintln(out, "No events")
			return nil
		}

		fmt.Fprintf(out, "Recent Events (%d):\n\n", len(raw))
		fmt.Fprintf(out, "  %-12s %-28s %-20s\n", "TIME", "TYPE", "ENTITY")
		fmt.Fprintln(out, "  "+strings.Repeat("-", 60))

		now := time.Now()
		for _, e := range raw {
			ref := e.EntityType + "/" + e.EntityID
			fmt.Fprintf(out, "  %-12s %-28s %-20s\n", formatTimeAgo(e.OccurredAt, now), e.EventType, truncate(ref, 20))
		}
		return nil
	})
}

// queryEvents applies the entity or since filter, newest first, at most
// limit events.
func queryEvents(ctx context.Context, l *events.EventLog, entity string, since time.Duration, limit int) ([]events.RawEvent, error) {
	var raw []events.RawEvent
	var err error
	switch {
	case entity != "":
		typ, id, ok := strings.Cut(entity, "/")
		if !ok || typ == "" || id == "" {
			return nil, fmt.Errorf("invalid entity %q: want type/id", entity)
		}
		raw, err = l.ForEntity(ctx, typ, id)
	case since > 0:
		raw, err = l.Since(ctx, time.Now().Add(-since))
	default:
		return l.Recent(ctx, limit)
	}
	if err != nil {
		return nil, err
	}
	return newestFirst(raw, limit), nil
}

func newestFirst(raw []events.RawEvent, limit int) []events.RawEvent {
	out := make([]events.RawEvent, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		out = append(out, raw[i])
	}
	return head(out, limit)
}
