// internal/events/playback.go
package events

// Playback event types.
const (
	EventPlaybackStarted = "playback.started"
	EventPlaybackPaused  = "playback.paused"
	EventPlaybackResumed = "playback.resumed"
	EventPlaybackStopped = "playback.stopped"
	EventItemScrobbled   = "item.scrobbled"
	EventScrobbleFailed  = "scrobble.failed"
)

// PlaybackStateChanged covers start, pause, resume and stop.
type PlaybackStateChanged struct {
	BaseEvent
	Title      string `json:"title,omitempty"`
	PositionMs int64  `json:"position_ms"`
	DurationMs int64  `json:"duration_ms"`
	PlayedMs   int64  `json:"played_ms"`
}

// ItemScrobbled is emitted when an item is marked played.
type ItemScrobbled struct {
	BaseEvent
	Title      string `json:"title,omitempty"`
	PositionMs int64  `json:"position_ms"`
}

// ScrobbleFailed is emitted when marking an item played fails; a later
// position update may retry.
type ScrobbleFailed struct {
	BaseEvent
	Error string `json:"error"`
}
