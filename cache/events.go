package cache

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Conn is the part of *nats.Conn used to publish events.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Event announces that rows of a resource type changed.
type Event struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Origin   string `json:"origin"`
}

// Notifier publishes change events so other instances can drop their local
// copies. A Notifier without a connection does nothing.
type Notifier struct {
	conn    Conn
	subject string
	origin  string
}

func NewNotifier(conn Conn, subject, origin string) *Notifier {
	return &Notifier{conn: conn, subject: subject, origin: origin}
}

func (n *Notifier) Publish(resource, action string) error {
	if n == nil || n.conn == nil {
		return nil
	}
	data, err := json.Marshal(Event{Resource: resource, Action: action, Origin: n.origin})
	if err != nil {
		return err
	}
	return n.conn.Publish(n.subject, data)
}

// HandleEvent returns the message handler that invalidates c for events sent
// by other instances.
func HandleEvent(c Cache, origin string) func(data []byte) {
	logger := log.With().Str("component", "cacheEvents").Logger()
	return func(data []byte) {
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			logger.Warn().Err(err).Msg("Discarding malformed cache event")
			return
		}
		if ev.Origin == origin || ev.Resource == "" {
			return
		}
		if err := c.Invalidate(context.Background(), Keys(ev.Resource)...); err != nil {
			logger.Error().Err(err).Str("resource", ev.Resource).Msg("Failed to invalidate cache from event")
			return
		}
		logger.Debug().Str("resource", ev.Resource).Str("action", ev.Action).Msg("Cache invalidated by peer")
	}
}

// Subscribe wires HandleEvent to a NATS subject.
func Subscribe(nc *nats.Conn, subject string, c Cache, origin string) (*nats.Subscription, error) {
	handle := HandleEvent(c, origin)
	return nc.Subscribe(subject, func(m *nats.Msg) {
		handle(m.Data)
	})
}
