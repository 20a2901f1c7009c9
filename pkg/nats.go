package pkg

import (
	"encoding/json"
	"sync"

	"dronedesk"

	"github.com/nats-io/nats.go"
)

var (
	natsOnce sync.Once
	natsConn *nats.Conn
)

// natsConnect lazily dials NATS. A failed dial is remembered as nil so
// publishing degrades to a no-op instead of retrying on the hot path.
func natsConnect() *nats.Conn {
	natsOnce.Do(func() {
		cfg := dronedesk.GetConfig()
		if !cfg.NATSConfig.Enabled {
			return
		}
		nc, err := nats.Connect(cfg.NATSConfig.URL)
		if err != nil {
			dronedesk.Logger.Error().Err(err).Str("url", cfg.NATSConfig.URL).Msg("NATS connect failed, events disabled")
			return
		}
		natsConn = nc
	})
	return natsConn
}

// PublishEvent publishes a JSON-encoded domain event, best effort. Events
// notify collaborators (mail/reporting frontends) after a commit; the write
// itself never depends on them.
func PublishEvent(subject string, payload any) {
	nc := natsConnect()
	if nc == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		dronedesk.Logger.Error().Err(err).Str("subject", subject).Msg("Failed to marshal event payload")
		return
	}
	if err := nc.Publish(subject, data); err != nil {
		dronedesk.Logger.Error().Err(err).Str("subject", subject).Msg("Failed to publish event")
	}
}

// CloseNATS drains the connection on shutdown.
func CloseNATS() {
	if natsConn != nil {
		_ = natsConn.Drain()
	}
}
