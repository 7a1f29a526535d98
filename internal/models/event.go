package models

// Lifecycle event types published after committed mutations.
const (
	EventUserRegistered = "user.registered"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
)

// UserEvent is the message published to the event stream after a committed
// user mutation. Publishing is best-effort and never changes the operation
// result.
type UserEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	Type      string `json:"type"`      // One of the EventUser* constants
	Timestamp int64  `json:"timestamp"` // Unix timestamp of the event
	User      User   `json:"user"`      // User state after the mutation
}
