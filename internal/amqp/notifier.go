package amqp

import (
	"context"
	"fmt"

	"github.com/budgetgarden/budgetgarden/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

var notifiedEvents = []event_bus.EventType{
	event_bus.BudgetRecordStoredType,
	event_bus.BudgetRecordDeletedType,
	event_bus.BudgetSpentUpdatedType,
}

// Notifier forwards budget change events from the bus to a message broker.
type Notifier struct {
	publisher  Publisher
	routingKey string
}

func NewNotifier(publisher Publisher, routingKey string) *Notifier {
	return &Notifier{publisher: publisher, routingKey: routingKey}
}

// Subscribe registers the notifier for every budget change event. The returned function removes it again.
func (n *Notifier) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubscribers := make([]func(), 0, len(notifiedEvents))
	for _, eventType := range notifiedEvents {
		unsubscribers = append(unsubscribers, bus.Subscribe(eventType, n.handle))
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

func (n *Notifier) handle(e event_bus.Event) error {
	body, err := NewChangeMessage(e).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", e.Type, err)
	}
	// notifications are sent even when the request that caused them was cancelled
	ctx := context.WithoutCancel(e.Context())
	if err := n.publisher.Publish(ctx, n.routingKey, body); err != nil {
		return err
	}
	log.Debugf("Published %s notification", e.Type)
	return nil
}
