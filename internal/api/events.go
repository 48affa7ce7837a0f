package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/tyrius02/next-gen-vision/internal/events"
)

// registerSSERoutes wires the live event stream. Huma's sse helper owns
// the endpoint and maps event types to their SSE names.
func (s *Server) registerSSERoutes() {
	if s.eventBus == nil {
		return
	}

	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time event stream for device changes, scans, config reloads, update notices, and log entries",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"device-added":     events.DeviceAddedEvent{},
		"device-removed":   events.DeviceRemovedEvent{},
		"scan-completed":   events.ScanCompletedEvent{},
		"config-reloaded":  events.ConfigReloadedEvent{},
		"update-available": events.UpdateAvailableEvent{},
		"log-entry":        events.LogEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		// Event channel for this connection
		eventCh := make(chan any, 64)

		// Subscribe to every event type on the bus
		unsubscribers := []func(){
			events.SubscribeToChannel[events.DeviceAddedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.DeviceRemovedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.ScanCompletedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.ConfigReloadedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.UpdateAvailableEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.LogEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// Confirm the stream works before the first real event arrives
		if err := send.Data(events.LogEvent{
			Timestamp: time.Now().Format(time.RFC3339Nano),
			Level:     "info",
			Module:    "api",
			Message:   "Event stream established",
		}); err != nil {
			return
		}

		// Forward events until the client disconnects
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
