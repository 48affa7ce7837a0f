package events

import (
	"github.com/kelindar/event"
)

// Bus fans events out to subscribers. One bus serves the whole process.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish delivers ev to every subscriber of its concrete type.
// kelindar/event resolves the subscriber group from the compile-time
// type, so each event type needs its own dispatch arm.
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case DeviceAddedEvent:
		event.Publish(b.dispatcher, e)
	case DeviceRemovedEvent:
		event.Publish(b.dispatcher, e)
	case ScanCompletedEvent:
		event.Publish(b.dispatcher, e)
	case ConfigReloadedEvent:
		event.Publish(b.dispatcher, e)
	case UpdateAvailableEvent:
		event.Publish(b.dispatcher, e)
	case LogEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers handler for the event type named by its parameter
// and returns the matching unsubscribe function:
//
//	unsub := bus.Subscribe(func(e DeviceAddedEvent) { ... })
//
// A handler with an unrecognized parameter type subscribes to nothing.
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(DeviceAddedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DeviceRemovedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ScanCompletedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ConfigReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(UpdateAvailableEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LogEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
