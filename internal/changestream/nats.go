package changestream

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/nats-io/nats.go"
)

// NATSStream implements Publisher and Subscriber on a NATS connection
type NATSStream struct {
	nc *nats.Conn

	mu   sync.Mutex
	subs []*nats.Subscription
}

// NewNATSStream creates a NATSStream over an established connection
func NewNATSStream(nc *nats.Conn) *NATSStream {
	return &NATSStream{nc: nc}
}

// Publish marshals the event and publishes it on the table's subject
func (s *NATSStream) Publish(table, eventType string, newRow interface{}) error {
	event := Event{
		EventType: eventType,
		Table:     table,
		NewRow:    newRow,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling change event: %w", err)
	}
	return s.nc.Publish(SubjectFor(table), data)
}

// Subscribe registers a handler for all change events on a table.
// Malformed payloads are logged and dropped.
func (s *NATSStream) Subscribe(table string, handler func(Event)) error {
	sub, err := s.nc.Subscribe(SubjectFor(table), func(msg *nats.Msg) {
		var event Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			log.Printf("changestream: invalid event on %s: %v", msg.Subject, err)
			return
		}
		handler(event)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", SubjectFor(table), err)
	}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return nil
}

// Close drains all table subscriptions
func (s *NATSStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("changestream: unsubscribe failed: %v", err)
		}
	}
	s.subs = nil
}
