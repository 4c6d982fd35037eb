package amqp

import (
	"encoding/json"
	"time"

	"github.com/budgetgarden/budgetgarden/internal/event_bus"
)

// ChangeMessage is the body of every notification sent to the exchange.
type ChangeMessage struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

func NewChangeMessage(e event_bus.Event) ChangeMessage {
	return ChangeMessage{
		Type:      string(e.Type),
		Timestamp: e.Timestamp.UTC(),
		Data:      e.Data,
	}
}

func (m ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
