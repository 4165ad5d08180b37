package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexdeck/internal/clock"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/playback"
)

var playCmd = &cobra.Command{
	Use:   "play <item-id>",
	Short: "Stream an item and report its progress to the server",
	Long: `Print the stream URL for an item and report playback progress while
it plays, optionally in an external player.

Progress follows wall-clock time from the saved resume position. Type
p and Enter to pause or resume, q and Enter to stop; Ctrl-C also stops.
The item is marked played once it passes the configured threshold.

Examples:
  plexdeck play 301
  plexdeck play --player mpv 52
  plexdeck play --from-start --type movie 10`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayCmd,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("type", "", typeFlagUsage)
	playCmd.Flags().Bool("from-start", false, "Ignore the saved resume position")
	playCmd.Flags().String("player", "", "Player command to run with the stream URL")
}

var (
	errFinished = errors.New("playback finished")
	errStopped  = errors.New("playback stopped")
)

// playhead derives the current position from the clock while playing.
type playhead struct {
	clock clock.Clock

	mu     sync.Mutex
	offset time.Duration // position at the last resume or pause
	since  time.Time
	paused bool
}

func newPlayhead(c clock.Clock, start time.Duration) *playhead {
	return &playhead{clock: c, offset: start, since: c.Now()}
}

func (p *playhead) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *playhead) positionLocked() time.Duration {
	if p.paused {
		return p.offset
	}
	return p.offset + p.clock.Now().Sub(p.since)
}

// Toggle pauses a playing head or resumes a paused one. It returns the
// position and whether the head is now paused.
func (p *playhead) Toggle() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.paused = false
		p.since = p.clock.Now()
		return p.offset, false
	}
	p.offset = p.positionLocked()
	p.paused = true
	return p.offset, true
}

// lockedWriter serializes writes from the playback goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	typeFlag, _ := cmd.Flags().GetString("type")
	fromStart, _ := cmd.Flags().GetBool("from-start")
	player, _ := cmd.Flags().GetString("player")

	return withApp(cmd, setupConnect, func(ctx context.Context, a *app) error {
		kind, err := itemKind(typeFlag, a.session.Status().Library)
		if err != nil {
			return err
		}
		item, err := lookupPlayable(ctx, a.session, kind, args[0])
		if err != nil {
			return err
		}
		if item.PartKey == "" {
			return fmt.Errorf("item %s has no playable media", args[0])
		}
		streamURL, err := a.session.StreamURL(item.PartKey)
		if err != nil {
			return err
		}

		resume := item.ViewOffset
		if fromStart {
			resume = 0
		}

		out := &lockedWriter{w: cmd.OutOrStdout()}
		fmt.Fprintf(out, "Playing %s [%s / %s]\n", item.Item.Title, formatDuration(resume), formatDuration(item.Item.Duration))
		fmt.Fprintln(out, streamURL)

		clk := clock.Real()
		head := newPlayhead(clk, resume)
		itemEvents := a.bus.SubscribeEntity(events.EntityItem, item.Item.ID, 8)
		a.reporter.Start(ctx, item.Item, resume)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return watchItemEvents(gctx, itemEvents, out)
		})
		g.Go(func() error {
			return trackProgress(gctx, clk, a.reporter, head, item.Item.Duration)
		})
		g.Go(func() error {
			return readControls(gctx, cmd.InOrStdin(), out, a.reporter, head)
		})
		if player != "" {
			g.Go(func() error {
				return runPlayer(gctx, player, streamURL)
			})
		}
		err = g.Wait()

		pos := head.Position()
		finished := errors.Is(err, errFinished)
		if finished {
			pos = item.Item.Duration
		}
		a.reporter.Stop(context.WithoutCancel(ctx), pos, finished)
		fmt.Fprintf(out, "Stopped at %s\n", formatDuration(pos))

		switch {
		case err == nil, finished, errors.Is(err, errStopped), errors.Is(err, context.Canceled):
			return nil
		}
		return err
	})
}

// trackProgress feeds the playhead position to the reporter every second
// until the item's duration is reached.
func trackProgress(ctx context.Context, clk clock.Clock, r *playback.Reporter, head *playhead, duration time.Duration) error {
	ticker := clk.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			pos := head.Position()
			r.PositionUpdate(ctx, pos)
			if duration > 0 && pos >= duration {
				return errFinished
			}
		}
	}
}

// watchItemEvents reports scrobble outcomes for the playing item.
func watchItemEvents(ctx context.Context, ch <-chan events.Event, out io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			switch ev := e.(type) {
			case *events.ItemScrobbled:
				fmt.Fprintf(out, "Marked played at %s\n", formatDuration(time.Duration(ev.PositionMs)*time.Millisecond))
			case *events.ScrobbleFailed:
				fmt.Fprintf(out, "Marking played failed: %s\n", ev.Error)
			}
		}
	}
}

// readControls handles p (pause/resume) and q (stop) lines from in. End of
// input leaves playback running.
func readControls(ctx context.Context, in io.Reader, out io.Writer, r *playback.Reporter, head *playhead) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			switch strings.ToLower(line) {
			case "q", "quit", "stop":
				return errStopped
			case "p", "pause", "":
				pos, paused := head.Toggle()
				if paused {
					r.Pause(ctx, pos)
					fmt.Fprintf(out, "Paused at %s\n", formatDuration(pos))
				} else {
					r.Resume(ctx, pos)
					fmt.Fprintf(out, "Resumed at %s\n", formatDuration(pos))
				}
			}
		}
	}
}

// runPlayer runs the player command with the stream URL appended. Its exit
// ends playback.
func runPlayer(ctx context.Context, command, streamURL string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return errors.New("empty player command")
	}
	c := exec.CommandContext(ctx, fields[0], append(fields[1:], streamURL)...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("player: %w", err)
	}
	return errStopped
}
