package events

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"
)

// Subscriber callbacks run on dispatcher goroutines, so every test
// receives through a channel instead of asserting inside the handler.

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := New()
	received := make(chan DeviceAddedEvent, 1)

	unsub := bus.Subscribe(func(e DeviceAddedEvent) { received <- e })
	defer unsub()

	want := DeviceAddedEvent{
		DeviceID:  "usb-0000:00:14.0-3",
		Path:      "/dev/video0",
		Name:      "HD Pro Webcam C920",
		Driver:    "uvcvideo",
		Timestamp: "2026-01-27T10:30:00Z",
	}
	bus.Publish(want)

	if got := <-received; got != want {
		t.Errorf("received %+v, want %+v", got, want)
	}
}

func TestPublishFansOut(t *testing.T) {
	bus := New()
	first := make(chan ScanCompletedEvent, 1)
	second := make(chan ScanCompletedEvent, 1)

	defer bus.Subscribe(func(e ScanCompletedEvent) { first <- e })()
	defer bus.Subscribe(func(e ScanCompletedEvent) { second <- e })()

	bus.Publish(ScanCompletedEvent{Trigger: "manual", Devices: 2, Added: 1})

	for _, ch := range []chan ScanCompletedEvent{first, second} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("a subscriber never received the event")
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()
	received := make(chan DeviceRemovedEvent, 1)

	unsub := bus.Subscribe(func(e DeviceRemovedEvent) { received <- e })
	bus.Publish(DeviceRemovedEvent{Path: "/dev/video0"})
	<-received

	unsub()

	bus.Publish(DeviceRemovedEvent{Path: "/dev/video1"})
	select {
	case e := <-received:
		t.Fatalf("received %+v after unsubscribe", e)
	case <-time.After(10 * time.Millisecond):
	}
}

func TestSubscriberSeesOnlyItsType(t *testing.T) {
	bus := New()
	added := make(chan struct{}, 1)
	scans := make(chan struct{}, 1)

	defer bus.Subscribe(func(_ DeviceAddedEvent) { added <- struct{}{} })()
	defer bus.Subscribe(func(_ ScanCompletedEvent) { scans <- struct{}{} })()

	bus.Publish(DeviceAddedEvent{Path: "/dev/video0"})
	<-added
	select {
	case <-scans:
		t.Fatal("scan subscriber received a device event")
	case <-time.After(10 * time.Millisecond):
	}

	bus.Publish(ScanCompletedEvent{Trigger: "manual"})
	<-scans
	select {
	case <-added:
		t.Fatal("device subscriber received a scan event")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestConcurrentPublish(t *testing.T) {
	bus := New()
	const publishers = 10
	const perPublisher = 100

	received := make(chan struct{}, publishers*perPublisher)
	defer bus.Subscribe(func(_ DeviceAddedEvent) { received <- struct{}{} })()

	var wg sync.WaitGroup
	for range publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perPublisher {
				bus.Publish(DeviceAddedEvent{
					Path:      "/dev/video0",
					Timestamp: time.Now().Format(time.RFC3339),
				})
			}
		}()
	}
	wg.Wait()

	deadline := time.After(5 * time.Second)
	for range publishers * perPublisher {
		select {
		case <-received:
		case <-deadline:
			t.Fatal("not every published event was delivered")
		}
	}
}

// Publish has one dispatch arm per event type; a type missing there
// would silently never reach its subscribers.
func TestEveryEventTypeDispatches(t *testing.T) {
	bus := New()

	tests := []struct {
		name      string
		subscribe func(chan<- Event) func()
		event     Event
	}{
		{
			"DeviceAdded",
			func(ch chan<- Event) func() { return bus.Subscribe(func(e DeviceAddedEvent) { ch <- e }) },
			DeviceAddedEvent{Path: "/dev/video0"},
		},
		{
			"DeviceRemoved",
			func(ch chan<- Event) func() { return bus.Subscribe(func(e DeviceRemovedEvent) { ch <- e }) },
			DeviceRemovedEvent{Path: "/dev/video0"},
		},
		{
			"ScanCompleted",
			func(ch chan<- Event) func() { return bus.Subscribe(func(e ScanCompletedEvent) { ch <- e }) },
			ScanCompletedEvent{Trigger: "initial"},
		},
		{
			"ConfigReloaded",
			func(ch chan<- Event) func() { return bus.Subscribe(func(e ConfigReloadedEvent) { ch <- e }) },
			ConfigReloadedEvent{Path: "/etc/vision-node/config.toml"},
		},
		{
			"UpdateAvailable",
			func(ch chan<- Event) func() { return bus.Subscribe(func(e UpdateAvailableEvent) { ch <- e }) },
			UpdateAvailableEvent{LatestVersion: "1.3.0"},
		},
		{
			"Log",
			func(ch chan<- Event) func() { return bus.Subscribe(func(e LogEvent) { ch <- e }) },
			LogEvent{Message: "scan complete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			received := make(chan Event, 1)
			defer tt.subscribe(received)()

			bus.Publish(tt.event)

			select {
			case <-received:
			case <-time.After(time.Second):
				t.Fatalf("%T never reached its subscriber", tt.event)
			}
		})
	}
}

func TestTypeConstantsAreDistinct(t *testing.T) {
	events := []Event{
		DeviceAddedEvent{},
		DeviceRemovedEvent{},
		ScanCompletedEvent{},
		ConfigReloadedEvent{},
		UpdateAvailableEvent{},
		LogEvent{},
	}

	seen := make(map[uint32]string)
	for _, ev := range events {
		id := ev.Type()
		if id == 0 {
			t.Errorf("%T.Type() = 0, want a nonzero identifier", ev)
		}
		name := fmt.Sprintf("%T", ev)
		if prev, dup := seen[id]; dup {
			t.Errorf("%s and %s share type identifier %d", name, prev, id)
		}
		seen[id] = name
	}
}

// SSE clients consume these as JSON, so the wire field names are part
// of the API.
func TestEventJSONFieldNames(t *testing.T) {
	tests := []struct {
		name  string
		event any
		keys  []string
	}{
		{
			"DeviceAdded",
			DeviceAddedEvent{
				DeviceID:  "usb-0000:00:14.0-3",
				Path:      "/dev/video0",
				Name:      "HD Pro Webcam C920",
				Driver:    "uvcvideo",
				Timestamp: "2026-01-27T10:30:00Z",
			},
			[]string{"device_id", "path", "name", "driver", "timestamp"},
		},
		{
			"ScanCompleted",
			ScanCompletedEvent{Trigger: "hotplug", Devices: 2, Added: 1, DurationMS: 41.7},
			[]string{"trigger", "devices", "added", "removed", "errors", "duration_ms"},
		},
		{
			"UpdateAvailable",
			UpdateAvailableEvent{CurrentVersion: "1.2.0", LatestVersion: "1.3.0"},
			[]string{"current_version", "latest_version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.event)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			var fields map[string]any
			if err := json.Unmarshal(data, &fields); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			for _, key := range tt.keys {
				if _, ok := fields[key]; !ok {
					t.Errorf("marshaled %s lacks field %q: %s", tt.name, key, data)
				}
			}
		})
	}
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 10)

	unsub := SubscribeToChannel[DeviceAddedEvent](bus, ch)
	defer unsub()

	want := DeviceAddedEvent{DeviceID: "usb-0000:00:14.0-3", Path: "/dev/video0"}
	bus.Publish(want)

	got, ok := (<-ch).(DeviceAddedEvent)
	if !ok || got.DeviceID != want.DeviceID {
		t.Fatalf("received %+v (%t), want %+v", got, ok, want)
	}
}

func TestSubscribeToChannelDropsWhenFull(t *testing.T) {
	bus := New()
	ch := make(chan any, 1)

	unsub := SubscribeToChannel[ScanCompletedEvent](bus, ch)
	defer unsub()

	// Deliveries for one subscription happen in publish order, so the
	// first event fills the buffer and the other two find it full.
	for i := range 3 {
		bus.Publish(ScanCompletedEvent{Trigger: "manual", Devices: i})
	}

	// Let the dispatcher work through its queue before reading.
	time.Sleep(100 * time.Millisecond)

	got, ok := (<-ch).(ScanCompletedEvent)
	if !ok || got.Devices != 0 {
		t.Fatalf("first delivery = %+v, want the event with Devices 0", got)
	}
	select {
	case ev := <-ch:
		t.Fatalf("received %+v, want the overflow dropped", ev)
	case <-time.After(20 * time.Millisecond):
	}
}
