// Package changestream carries per-table change events between the
// mutation path and the realtime invalidation coordinator over NATS.
package changestream

// Tables that emit change events
const (
	TablePosts     = "posts"
	TableReactions = "post_reactions"
	TableComments  = "post_comments"
)

// Event types
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Event is the wire shape of a single table change
type Event struct {
	EventType string      `json:"eventType"`
	Table     string      `json:"table"`
	NewRow    interface{} `json:"newRow,omitempty"`
}

// Publisher emits change events after successful mutations. Publication is
// best-effort; callers log failures and never fail the mutation over them.
type Publisher interface {
	Publish(table, eventType string, newRow interface{}) error
}

// Subscriber delivers change events for a single table to a handler
type Subscriber interface {
	Subscribe(table string, handler func(Event)) error
}

// SubjectFor maps a table name to its NATS subject
func SubjectFor(table string) string {
	return "changes." + table
}
