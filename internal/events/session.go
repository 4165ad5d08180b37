// internal/events/session.go
package events

// Session event types.
const (
	EventLinkStarted       = "link.started"
	EventAccountLinked     = "account.linked"
	EventAccountUnlinked   = "account.unlinked"
	EventServersRefreshed  = "servers.refreshed"
	EventConnectionChanged = "connection.changed"
	EventConnectFailed     = "connect.failed"
	EventLibrarySelected   = "library.selected"
	EventPreloadCompleted  = "preload.completed"
	EventPreloadDiscarded  = "preload.discarded"
)

// LinkStarted is emitted when a pairing code is issued.
type LinkStarted struct {
	BaseEvent
	Code    string `json:"code"`
	AuthURL string `json:"auth_url"`
}

// AccountLinked is emitted once a pairing code is claimed and the account fetched.
type AccountLinked struct {
	BaseEvent
	Username string `json:"username"`
}

// AccountUnlinked is emitted when credentials and selection are cleared.
type AccountUnlinked struct {
	BaseEvent
}

// ServersRefreshed is emitted after the server list is fetched.
type ServersRefreshed struct {
	BaseEvent
	Count int      `json:"count"`
	Names []string `json:"names"`
}

// ConnectionChanged is emitted on every connection state transition.
type ConnectionChanged struct {
	BaseEvent
	State      string `json:"state"`
	ServerName string `json:"server_name"`
	URI        string `json:"uri,omitempty"`
	Kind       string `json:"kind,omitempty"` // local, remote, relay
	Cause      string `json:"cause,omitempty"`
}

// ConnectAttempt is one negotiated path tried during a connect.
type ConnectAttempt struct {
	Kind string `json:"kind"`
	URI  string `json:"uri"`
}

// ConnectFailed is emitted when every candidate connection failed its probe.
type ConnectFailed struct {
	BaseEvent
	ServerName string           `json:"server_name"`
	Attempts   []ConnectAttempt `json:"attempts"`
}

// LibrarySelected is emitted when the current library changes.
type LibrarySelected struct {
	BaseEvent
	Title       string `json:"title"`
	LibraryType string `json:"library_type"`
}

// PreloadCompleted is emitted when cached content for a library is stored.
type PreloadCompleted struct {
	BaseEvent
	Artists int `json:"artists"`
	Albums  int `json:"albums"`
	Movies  int `json:"movies"`
	Shows   int `json:"shows"`
}

// PreloadDiscarded is emitted when a preload finishes after its library was
// deselected.
type PreloadDiscarded struct {
	BaseEvent
	CurrentLibraryID string `json:"current_library_id"`
}
