// Package events publishes domain events to NATS.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// Event subjects, relative to the configured prefix.
const (
	ReservationCreated        = "reservation.created"
	MaintenanceRequestCreated = "maintenance_request.created"
	RepairLogged              = "repair.logged"
)

// Publisher emits domain events. Publishing is best effort: failures are
// logged and never surface to the caller.
type Publisher interface {
	Publish(subject string, payload any)
}

// Nop drops every event. It is used when no NATS URL is configured.
type Nop struct{}

func (Nop) Publish(string, any) {}

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

// NATSPublisher publishes JSON-encoded events under a subject prefix.
type NATSPublisher struct {
	nc     conn
	prefix string
}

// Connect dials the NATS server at url.
func Connect(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("airline-ops-backend"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Printf("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return newPublisher(nc, prefix), nil
}

func newPublisher(nc conn, prefix string) *NATSPublisher {
	return &NATSPublisher{nc: nc, prefix: prefix}
}

// Subject returns the fully qualified subject for name.
func (p *NATSPublisher) Subject(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

// Publish encodes payload as JSON and sends it.
func (p *NATSPublisher) Publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error encoding %s event: %v", subject, err)
		return
	}
	if err := p.nc.Publish(p.Subject(subject), data); err != nil {
		log.Printf("Error publishing %s event: %v", subject, err)
	}
}

// Close flushes pending events and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
