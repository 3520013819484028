// Package communication fans debate lifecycle events out to NATS subjects
// and connected WebSocket clients.
package communication

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/symposium-labs/symposium/core"
)

// Messenger encapsulates a NATS connection scoped to debate subjects.
type Messenger struct {
	NC *nats.Conn
}

// NewMessenger creates a new instance of Messenger.
func NewMessenger(url string) (*Messenger, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Messenger{NC: nc}, nil
}

// Publish serializes the payload and publishes it on the subject.
func (m *Messenger) Publish(subject string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal event for %s: %v", subject, err)
		return
	}
	if err := m.NC.Publish(subject, data); err != nil {
		log.Printf("Failed to publish event on %s: %v", subject, err)
	}
}

// SubscribeDebateEvents registers a handler over all debate subjects.
func (m *Messenger) SubscribeDebateEvents(handler nats.MsgHandler) error {
	for _, subject := range []string{
		core.SubjectDebateStarted,
		core.SubjectRoundCompleted,
		core.SubjectArgumentSubmitted,
		core.SubjectConsensusReached,
	} {
		if _, err := m.NC.Subscribe(subject, handler); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the NATS connection.
func (m *Messenger) Close() {
	m.NC.Close()
}

// EventFanout publishes each debate event to NATS (when configured) and to
// the WebSocket hub. It satisfies the moderator's event sink contract.
type EventFanout struct {
	Messenger *Messenger // nil disables NATS publication
}

func (f *EventFanout) Publish(subject string, payload interface{}) {
	if f.Messenger != nil {
		f.Messenger.Publish(subject, payload)
	}
	BroadcastEvent(subject, payload)
}
