package devices

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/tyrius02/next-gen-vision/internal/events"
	"github.com/tyrius02/next-gen-vision/internal/logging"
	"github.com/tyrius02/next-gen-vision/internal/metrics"
	"github.com/tyrius02/next-gen-vision/pkg/hotplug"
	"golang.org/x/sync/errgroup"
)

// Scan trigger values, recorded on scan-completed events.
const (
	TriggerInitial = "initial"
	TriggerHotplug = "hotplug"
	TriggerManual  = "manual"
)

const (
	defaultConcurrency   = 4
	defaultHotplugSettle = time.Second
)

// ScanResult summarizes one completed scan.
type ScanResult struct {
	Trigger  string
	Devices  int
	Added    int
	Removed  int
	Errors   int
	Duration time.Duration
}

// Options configures a Registry.
type Options struct {
	Scanner  Scanner
	EventBus *events.Bus

	// Concurrency bounds parallel probes during a scan. Defaults to 4.
	Concurrency int

	// HotplugSettle is how long hotplug activity must be quiet before a
	// rescan runs. USB enumeration emits bursts of uevents, and video
	// nodes may appear a moment after the usb ones. Defaults to 1s.
	HotplugSettle time.Duration
}

// Registry keeps a capability snapshot for every present capture
// device, keyed by stable device ID. Scans diff against the previous
// inventory and publish added/removed/scan-completed events.
type Registry struct {
	scanner Scanner
	bus     *events.Bus
	logger  *slog.Logger
	limit   int
	settle  time.Duration

	scanMu sync.Mutex // serializes scans

	mu      sync.RWMutex
	devices map[string]*Snapshot
}

// NewRegistry creates a registry. A nil opts or missing fields fall
// back to defaults; a missing scanner gets the platform scanner over
// /dev.
func NewRegistry(opts *Options) *Registry {
	r := &Registry{
		logger:  logging.GetLogger("devices"),
		limit:   defaultConcurrency,
		settle:  defaultHotplugSettle,
		devices: make(map[string]*Snapshot),
	}
	if opts != nil {
		r.scanner = opts.Scanner
		r.bus = opts.EventBus
		if opts.Concurrency > 0 {
			r.limit = opts.Concurrency
		}
		if opts.HotplugSettle > 0 {
			r.settle = opts.HotplugSettle
		}
	}
	if r.scanner == nil {
		r.scanner = NewScanner("/dev", "video")
	}
	return r
}

// Scan probes all present devices and replaces the inventory with the
// result. Probe failures are counted, logged and skipped; only listing
// failures and context cancellation abort a scan.
func (r *Registry) Scan(ctx context.Context, trigger string) (*ScanResult, error) {
	r.scanMu.Lock()
	defer r.scanMu.Unlock()

	start := time.Now()
	paths, err := r.scanner.Paths()
	if err != nil {
		return nil, fmt.Errorf("failed to list device nodes: %w", err)
	}

	var (
		probeMu sync.Mutex
		found   = make(map[string]*Snapshot, len(paths))
		failed  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap, err := r.scanner.Probe(path)
			if err != nil {
				// One broken device must not abort the scan.
				r.logger.Warn("Device probe failed", "path", path, "error", err)
				probeMu.Lock()
				failed++
				probeMu.Unlock()
				return nil
			}
			probeMu.Lock()
			found[snap.ID] = snap
			probeMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)

	r.mu.Lock()
	var added, removed int
	for id, old := range r.devices {
		if _, ok := found[id]; !ok {
			removed++
			r.logger.Info("Device removed", "device_id", id, "path", old.Path, "name", old.Name)
			r.publish(events.DeviceRemovedEvent{
				DeviceID:  id,
				Path:      old.Path,
				Name:      old.Name,
				Timestamp: now,
			})
		}
	}
	for id, snap := range found {
		if _, ok := r.devices[id]; !ok {
			added++
			r.logger.Info("Device added", "device_id", id, "path", snap.Path, "name", snap.Name)
			r.publish(events.DeviceAddedEvent{
				DeviceID:  id,
				Path:      snap.Path,
				Name:      snap.Name,
				Driver:    snap.Driver,
				Timestamp: now,
			})
		}
	}
	r.devices = found
	r.mu.Unlock()

	duration := time.Since(start)
	metrics.RecordScan(duration, failed)
	metrics.SetDevicesPresent(len(found))

	result := &ScanResult{
		Trigger:  trigger,
		Devices:  len(found),
		Added:    added,
		Removed:  removed,
		Errors:   failed,
		Duration: duration,
	}
	r.publish(events.ScanCompletedEvent{
		Trigger:    trigger,
		Devices:    result.Devices,
		Added:      added,
		Removed:    removed,
		Errors:     failed,
		DurationMS: float64(duration) / float64(time.Millisecond),
		Timestamp:  now,
	})
	r.logger.Info("Scan completed",
		"trigger", trigger,
		"devices", result.Devices,
		"added", added,
		"removed", removed,
		"errors", failed,
		"duration", duration.Round(time.Millisecond))
	return result, nil
}

// Watch starts hotplug-driven rescans. Rescans run once activity has
// been quiet for the settle period, so a USB enumeration burst causes
// one scan, not five. Watch returns after starting the loop; it stops
// when ctx ends.
func (r *Registry) Watch(ctx context.Context) error {
	hotplugEvents, err := r.scanner.Events(ctx)
	if err != nil {
		return err
	}
	go r.watchLoop(ctx, hotplugEvents)
	r.logger.Info("Hotplug monitoring started")
	return nil
}

func (r *Registry) watchLoop(ctx context.Context, hotplugEvents <-chan hotplug.Event) {
	settle := time.NewTimer(r.settle)
	if !settle.Stop() {
		<-settle.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			settle.Stop()
			return
		case ev, ok := <-hotplugEvents:
			if !ok {
				settle.Stop()
				return
			}
			metrics.RecordHotplugEvent(ev.Action)
			if ev.Action != hotplug.ActionAdd && ev.Action != hotplug.ActionRemove {
				continue
			}
			r.logger.Debug("Hotplug event", "action", ev.Action, "node", ev.DevNode(), "kobj", ev.KObj)
			if pending && !settle.Stop() {
				<-settle.C
			}
			settle.Reset(r.settle)
			pending = true
		case <-settle.C:
			pending = false
			if _, err := r.Scan(ctx, TriggerHotplug); err != nil {
				r.logger.Error("Hotplug rescan failed", "error", err)
			}
		}
	}
}

// List returns the current inventory sorted by device path. The
// snapshots are shared; callers must not mutate them.
func (r *Registry) List() []*Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snaps := make([]*Snapshot, 0, len(r.devices))
	for _, snap := range r.devices {
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Path < snaps[j].Path })
	return snaps
}

// Get returns the snapshot for one stable device ID.
func (r *Registry) Get(id string) (*Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.devices[id]
	return snap, ok
}

// Count returns the number of devices currently present.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.devices)
}

func (r *Registry) publish(ev events.Event) {
	if r.bus != nil {
		r.bus.Publish(ev)
	}
}
