// internal/events/registry_test.go
package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Unmarshal(t *testing.T) {
	registry := NewRegistry()
	registry.Register(EventConnectionChanged, func() Event { return &ConnectionChanged{} })

	raw := RawEvent{
		EventType: EventConnectionChanged,
		Payload:   `{"type":"connection.changed","entity_type":"server","entity_id":"abc","occurred_at":"2026-01-01T00:00:00Z","state":"connected","server_name":"Living Room","uri":"http://192.168.1.10:32400","kind":"local"}`,
	}

	event, err := registry.Unmarshal(raw)
	require.NoError(t, err)

	changed, ok := event.(*ConnectionChanged)
	require.True(t, ok)
	assert.Equal(t, "connected", changed.State)
	assert.Equal(t, "Living Room", changed.ServerName)
	assert.Equal(t, "local", changed.Kind)
	assert.Equal(t, "abc", changed.EntityID())
}

func TestRegistry_UnmarshalUnknownType(t *testing.T) {
	registry := NewRegistry()

	raw := RawEvent{
		EventType: "unknown.event",
		Payload:   `{}`,
	}

	_, err := registry.Unmarshal(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestRegistry_UnmarshalInvalidJSON(t *testing.T) {
	registry := NewRegistry()
	registry.Register(EventItemScrobbled, func() Event { return &ItemScrobbled{} })

	raw := RawEvent{
		EventType: EventItemScrobbled,
		Payload:   `{invalid json`,
	}

	_, err := registry.Unmarshal(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal event payload")
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	eventTypes := []string{
		EventLinkStarted,
		EventAccountLinked,
		EventAccountUnlinked,
		EventServersRefreshed,
		EventConnectionChanged,
		EventConnectFailed,
		EventLibrarySelected,
		EventPreloadCompleted,
		EventPreloadDiscarded,
		EventPlaybackStarted,
		EventPlaybackPaused,
		EventPlaybackResumed,
		EventPlaybackStopped,
		EventItemScrobbled,
		EventScrobbleFailed,
	}

	for _, eventType := range eventTypes {
		t.Run(eventType, func(t *testing.T) {
			raw := RawEvent{
				EventType: eventType,
				Payload:   `{"type":"` + eventType + `","entity_type":"item","entity_id":"1","occurred_at":"2026-01-01T00:00:00Z"}`,
			}
			event, err := registry.Unmarshal(raw)
			require.NoError(t, err, "Failed to unmarshal %s", eventType)
			assert.Equal(t, eventType, event.EventType())
		})
	}
}

func TestRegistry_UnmarshalConnectFailed(t *testing.T) {
	registry := DefaultRegistry()

	raw := RawEvent{
		EventType: EventConnectFailed,
		Payload:   `{"type":"connect.failed","entity_type":"server","entity_id":"abc","occurred_at":"2026-01-01T12:00:00Z","server_name":"Den","attempts":[{"kind":"local","uri":"http://10.0.0.2:32400"},{"kind":"relay","uri":"https://relay.plex.direct"}]}`,
	}

	event, err := registry.Unmarshal(raw)
	require.NoError(t, err)

	failed, ok := event.(*ConnectFailed)
	require.True(t, ok)
	assert.Equal(t, "Den", failed.ServerName)
	require.Len(t, failed.Attempts, 2)
	assert.Equal(t, "relay", failed.Attempts[1].Kind)
}
