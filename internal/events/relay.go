package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// RelayConfig holds configuration for the JetStream relay.
type RelayConfig struct {
	URL           string
	StreamName    string
	SubjectPrefix string // e.g. "room.events"
	MaxReconnects int
	ReconnectWait time.Duration
	PublishWait   time.Duration
}

// DefaultRelayConfig returns default JetStream relay configuration.
func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		URL:           nats.DefaultURL,
		StreamName:    "ROOM_EVENTS",
		SubjectPrefix: "room.events",
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
		PublishWait:   5 * time.Second,
	}
}

// Relay mirrors room broadcasts onto a JetStream stream so external
// observers (spectator services, analytics) can replay them without a
// websocket seat in the room. Publishing is fire-and-forget from the room's
// perspective: a relay failure is logged, never surfaced to the session.
type Relay struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config RelayConfig
}

// NewRelay connects to NATS and ensures the events stream exists.
func NewRelay(ctx context.Context, config RelayConfig) (*Relay, error) {
	opts := []nats.Option{
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     config.StreamName,
		Subjects: []string{config.SubjectPrefix + ".>"},
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	return &Relay{nc: nc, js: js, config: config}, nil
}

// ToRoom publishes a room-wide event under
// <prefix>.<roomID>.<type>.
func (r *Relay) ToRoom(roomID string, event Event) {
	subject := fmt.Sprintf("%s.%s.%s", r.config.SubjectPrefix, roomID, event.Type)
	r.publish(subject, event)
}

// ToPlayer publishes a targeted event under
// <prefix>.<roomID>.direct.<playerID>.<type>.
func (r *Relay) ToPlayer(roomID, playerID string, event Event) {
	subject := fmt.Sprintf("%s.%s.direct.%s.%s", r.config.SubjectPrefix, roomID, playerID, event.Type)
	r.publish(subject, event)
}

func (r *Relay) publish(subject string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("failed to marshal relay event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.PublishWait)
	defer cancel()

	if _, err := r.js.Publish(ctx, subject, data); err != nil {
		log.Error().
			Err(err).
			Str("subject", subject).
			Str("event_type", string(event.Type)).
			Msg("failed to publish relay event")
	}
}

// Stop closes the NATS connection.
func (r *Relay) Stop() {
	if r.nc != nil {
		r.nc.Close()
	}
}
