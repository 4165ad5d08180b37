// Package playback reports now-playing progress to a media server and decides
// when an item counts as played.
package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vmunix/plexdeck/internal/clock"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/plex"
)

//go:generate mockgen -source=reporter.go -destination=mocks/mock_target.go -package=mocks

// Target receives progress reports. *session.Manager satisfies it.
type Target interface {
	Timeline(ctx context.Context, u plex.TimelineUpdate) error
	Scrobble(ctx context.Context, itemID string) error
}

// Defaults match the server's own web player.
const (
	DefaultInterval    = 10 * time.Second
	DefaultThreshold   = 0.9
	DefaultMinPlayTime = 60 * time.Second
)

// Item is the media being played.
type Item struct {
	ID        string
	Title     string
	Duration  time.Duration
	MediaType plex.MediaType
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock sets the clock used for play time and the timeline ticker.
func WithClock(c clock.Clock) Option {
	return func(r *Reporter) { r.clock = c }
}

// WithInterval sets the periodic timeline interval.
func WithInterval(d time.Duration) Option {
	return func(r *Reporter) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithThreshold sets the fraction of the duration past which an item counts
// as played.
func WithThreshold(f float64) Option {
	return func(r *Reporter) {
		if f > 0 && f <= 1 {
			r.threshold = f
		}
	}
}

// WithMinPlayTime sets the play time required before an item can be
// scrobbled.
func WithMinPlayTime(d time.Duration) Option {
	return func(r *Reporter) {
		if d >= 0 {
			r.minPlay = d
		}
	}
}

// WithBus publishes playback events to bus.
func WithBus(bus *events.Bus) Option {
	return func(r *Reporter) { r.bus = bus }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) { r.log = l.With("component", "playback") }
}

// Reporter tracks a single now-playing item.
type Reporter struct {
	target    Target
	clock     clock.Clock
	bus       *events.Bus
	log       *slog.Logger
	interval  time.Duration
	threshold float64
	minPlay   time.Duration

	mu        sync.Mutex
	item      *Item
	state     plex.PlaybackState
	position  time.Duration
	played    time.Duration // closed playing segments
	since     time.Time     // start of the open playing segment
	scrobbled bool
	tickGen   uint64
	stopTick  chan struct{}
	tickDone  chan struct{}
}

// New returns a Reporter that reports to target.
func New(target Target, opts ...Option) *Reporter {
	r := &Reporter{
		target:    target,
		clock:     clock.Real(),
		log:       slog.Default().With("component", "playback"),
		interval:  DefaultInterval,
		threshold: DefaultThreshold,
		minPlay:   DefaultMinPlayTime,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins tracking item from resume and reports it playing. Any item
// already tracked is dropped without a stop report.
func (r *Reporter) Start(ctx context.Context, item Item, resume time.Duration) {
	r.mu.Lock()
	done := r.stopTickerLocked()
	it := item
	r.item = &it
	r.state = plex.StatePlaying
	r.position = resume
	r.played = 0
	r.since = r.clock.Now()
	r.scrobbled = false
	r.startTickerLocked(ctx)
	u := r.updateLocked()
	r.mu.Unlock()
	wait(done)

	r.log.Debug("playback started", "item", item.ID, "resume", resume)
	r.report(ctx, u)
	r.publishState(ctx, events.EventPlaybackStarted, u, item.Title)
}

// Pause reports the item paused at pos and stops periodic reports.
func (r *Reporter) Pause(ctx context.Context, pos time.Duration) {
	r.mu.Lock()
	if r.item == nil || r.state != plex.StatePlaying {
		r.mu.Unlock()
		return
	}
	r.closeSegmentLocked()
	r.position = pos
	r.state = plex.StatePaused
	done := r.stopTickerLocked()
	u := r.updateLocked()
	title := r.item.Title
	r.mu.Unlock()
	wait(done)

	r.report(ctx, u)
	r.publishState(ctx, events.EventPlaybackPaused, u, title)
}

// Resume reports the item playing again from pos.
func (r *Reporter) Resume(ctx context.Context, pos time.Duration) {
	r.mu.Lock()
	if r.item == nil || r.state != plex.StatePaused {
		r.mu.Unlock()
		return
	}
	r.position = pos
	r.state = plex.StatePlaying
	r.since = r.clock.Now()
	r.startTickerLocked(ctx)
	u := r.updateLocked()
	title := r.item.Title
	r.mu.Unlock()

	r.report(ctx, u)
	r.publishState(ctx, events.EventPlaybackResumed, u, title)
}

// PositionUpdate records the current position and scrobbles once the item
// qualifies. It makes no other network call.
func (r *Reporter) PositionUpdate(ctx context.Context, pos time.Duration) {
	r.mu.Lock()
	if r.item == nil {
		r.mu.Unlock()
		return
	}
	r.position = pos
	if !r.shouldScrobbleLocked(false) {
		r.mu.Unlock()
		return
	}
	r.scrobbled = true
	item := *r.item
	r.mu.Unlock()

	r.scrobble(ctx, item, pos)
}

// Stop scrobbles the item if it qualifies, reports it stopped and forgets it.
// finished marks natural completion.
func (r *Reporter) Stop(ctx context.Context, pos time.Duration, finished bool) {
	r.mu.Lock()
	if r.item == nil {
		r.mu.Unlock()
		return
	}
	if r.state == plex.StatePlaying {
		r.closeSegmentLocked()
	}
	r.position = pos
	r.state = plex.StateStopped
	done := r.stopTickerLocked()
	doScrobble := r.shouldScrobbleLocked(finished)
	if doScrobble {
		r.scrobbled = true
	}
	item := r.item
	u := r.updateLocked()
	r.mu.Unlock()
	wait(done)

	if doScrobble {
		r.scrobble(ctx, *item, pos)
	}
	r.report(ctx, u)
	r.publishState(ctx, events.EventPlaybackStopped, u, item.Title)

	r.mu.Lock()
	if r.item == item {
		r.item = nil
		r.state = ""
		r.position = 0
		r.played = 0
		r.scrobbled = false
	}
	r.mu.Unlock()
}

// Close stops periodic reports without reporting the item stopped.
func (r *Reporter) Close() {
	r.mu.Lock()
	done := r.stopTickerLocked()
	r.mu.Unlock()
	wait(done)
}

// Played returns the accumulated play time of the current item.
func (r *Reporter) Played() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playedLocked()
}

// Scrobbled reports whether the current item has been marked played.
func (r *Reporter) Scrobbled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scrobbled
}

func (r *Reporter) playedLocked() time.Duration {
	if r.state == plex.StatePlaying {
		return r.played + r.clock.Now().Sub(r.since)
	}
	return r.played
}

func (r *Reporter) closeSegmentLocked() {
	r.played += r.clock.Now().Sub(r.since)
}

func (r *Reporter) shouldScrobbleLocked(finished bool) bool {
	if r.scrobbled {
		return false
	}
	if r.playedLocked() < r.minPlay {
		return false
	}
	if finished {
		return true
	}
	d := r.item.Duration
	return d > 0 && float64(r.position) >= r.threshold*float64(d)
}

func (r *Reporter) updateLocked() plex.TimelineUpdate {
	return plex.TimelineUpdate{
		ItemID:       r.item.ID,
		State:        r.state,
		Position:     r.position,
		Duration:     r.item.Duration,
		PlaybackTime: r.playedLocked(),
		MediaType:    r.item.MediaType,
	}
}

func (r *Reporter) scrobble(ctx context.Context, item Item, pos time.Duration) {
	if err := r.target.Scrobble(ctx, item.ID); err != nil {
		r.mu.Lock()
		if r.item != nil && r.item.ID == item.ID {
			r.scrobbled = false
		}
		r.mu.Unlock()
		r.log.Warn("scrobble failed", "item", item.ID, "error", err)
		r.publish(ctx, &events.ScrobbleFailed{
			BaseEvent: events.NewBaseEvent(events.EventScrobbleFailed, events.EntityItem, item.ID),
			Error:     err.Error(),
		})
		return
	}
	r.log.Info("item scrobbled", "item", item.ID, "title", item.Title)
	r.publish(ctx, &events.ItemScrobbled{
		BaseEvent:  events.NewBaseEvent(events.EventItemScrobbled, events.EntityItem, item.ID),
		Title:      item.Title,
		PositionMs: pos.Milliseconds(),
	})
}

func (r *Reporter) report(ctx context.Context, u plex.TimelineUpdate) {
	if err := r.target.Timeline(ctx, u); err != nil {
		r.log.Warn("timeline report failed", "item", u.ItemID, "state", u.State, "error", err)
	}
}

func (r *Reporter) publishState(ctx context.Context, eventType string, u plex.TimelineUpdate, title string) {
	r.publish(ctx, &events.PlaybackStateChanged{
		BaseEvent:  events.NewBaseEvent(eventType, events.EntityItem, u.ItemID),
		Title:      title,
		PositionMs: u.Position.Milliseconds(),
		DurationMs: u.Duration.Milliseconds(),
		PlayedMs:   u.PlaybackTime.Milliseconds(),
	})
}

func (r *Reporter) publish(ctx context.Context, e events.Event) {
	if err := r.bus.Publish(ctx, e); err != nil {
		r.log.Warn("failed to publish event", "type", e.EventType(), "error", err)
	}
}

// startTickerLocked runs periodic playing reports until the ticker is
// stopped or ctx ends.
func (r *Reporter) startTickerLocked(ctx context.Context) {
	r.tickGen++
	gen := r.tickGen
	ticker := r.clock.NewTicker(r.interval)
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stopTick, r.tickDone = stop, done

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C():
				r.tick(ctx, gen)
			}
		}
	}()
}

// stopTickerLocked signals the ticker goroutine and returns a channel closed
// when it exits. The caller waits on it after releasing the lock.
func (r *Reporter) stopTickerLocked() <-chan struct{} {
	if r.stopTick == nil {
		return nil
	}
	r.tickGen++
	close(r.stopTick)
	done := r.tickDone
	r.stopTick, r.tickDone = nil, nil
	return done
}

func (r *Reporter) tick(ctx context.Context, gen uint64) {
	r.mu.Lock()
	if gen != r.tickGen || r.item == nil || r.state != plex.StatePlaying {
		r.mu.Unlock()
		return
	}
	u := r.updateLocked()
	r.mu.Unlock()

	if err := r.target.Timeline(ctx, u); err != nil {
		r.log.Debug("periodic timeline failed", "item", u.ItemID, "error", err)
	}
}

func wait(done <-chan struct{}) {
	if done != nil {
		<-done
	}
}
