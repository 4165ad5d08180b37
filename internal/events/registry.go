// internal/events/registry.go
package events

import (
	"encoding/json"
	"fmt"
)

// EventFactory creates a new zero-value event of a specific type.
type EventFactory func() Event

// Registry maps event types to their factories for deserialization.
type Registry struct {
	factories map[string]EventFactory
}

// NewRegistry creates a new event registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]EventFactory),
	}
}

// Register adds an event type to the registry.
func (r *Registry) Register(eventType string, factory EventFactory) {
	r.factories[eventType] = factory
}

// Unmarshal deserializes a raw event into its concrete type.
func (r *Registry) Unmarshal(raw RawEvent) (Event, error) {
	factory, ok := r.factories[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", raw.EventType)
	}

	event := factory()
	if err := json.Unmarshal([]byte(raw.Payload), event); err != nil {
		return nil, fmt.Errorf("unmarshal event payload: %w", err)
	}

	return event, nil
}

// DefaultRegistry returns a registry with all standard event types registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Session
	r.Register(EventLinkStarted, func() Event { return &LinkStarted{} })
	r.Register(EventAccountLinked, func() Event { return &AccountLinked{} })
	r.Register(EventAccountUnlinked, func() Event { return &AccountUnlinked{} })
	r.Register(EventServersRefreshed, func() Event { return &ServersRefreshed{} })
	r.Register(EventConnectionChanged, func() Event { return &ConnectionChanged{} })
	r.Register(EventConnectFailed, func() Event { return &ConnectFailed{} })
	r.Register(EventLibrarySelected, func() Event { return &LibrarySelected{} })
	r.Register(EventPreloadCompleted, func() Event { return &PreloadCompleted{} })
	r.Register(EventPreloadDiscarded, func() Event { return &PreloadDiscarded{} })

	// Playback
	for _, t := range []string{EventPlaybackStarted, EventPlaybackPaused, EventPlaybackResumed, EventPlaybackStopped} {
		r.Register(t, func() Event { return &PlaybackStateChanged{} })
	}
	r.Register(EventItemScrobbled, func() Event { return &ItemScrobbled{} })
	r.Register(EventScrobbleFailed, func() Event { return &ScrobbleFailed{} })

	return r
}
