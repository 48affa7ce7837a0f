package events

import "github.com/kelindar/event"

// SubscribeToChannel forwards events of type T into ch until the
// returned unsubscribe function runs. Delivery is non-blocking: events
// arriving while ch is full are dropped, so a slow SSE client cannot
// stall the dispatcher.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
