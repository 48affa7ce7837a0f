package logging

import (
	"sync"
	"time"
)

// LogEntry is one captured log record. Seq is assigned by the buffer on
// write and grows monotonically, so clients can deduplicate between a
// history dump and a live stream.
type LogEntry struct {
	Seq        uint64         `json:"seq"`
	Timestamp  time.Time      `json:"timestamp"`
	Level      string         `json:"level"`
	Module     string         `json:"module"`
	Message    string         `json:"message"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// RingBuffer holds the most recent log entries in a fixed-size ring.
// Safe for concurrent use.
type RingBuffer struct {
	entries []LogEntry
	size    int
	head    int
	count   int
	seq     uint64
	mu      sync.RWMutex
}

// NewRingBuffer allocates a ring keeping the last size entries.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		entries: make([]LogEntry, size),
		size:    size,
	}
}

// Write adds a log entry to the buffer, overwriting the oldest entry if
// full. The entry's sequence number is assigned here; the stored entry
// is returned so callers can forward it with the sequence set.
func (rb *RingBuffer) Write(entry LogEntry) LogEntry {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.seq++
	entry.Seq = rb.seq

	rb.entries[rb.head] = entry
	rb.head = (rb.head + 1) % rb.size

	if rb.count < rb.size {
		rb.count++
	}

	return entry
}

// ReadAll copies out the held entries, oldest first.
func (rb *RingBuffer) ReadAll() []LogEntry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.count == 0 {
		return nil
	}

	result := make([]LogEntry, rb.count)

	if rb.count < rb.size {
		// Not wrapped yet; valid entries sit at the front.
		copy(result, rb.entries[:rb.count])
	} else {
		// Wrapped: head points at the oldest entry.
		n := copy(result, rb.entries[rb.head:])
		copy(result[n:], rb.entries[:rb.head])
	}

	return result
}

// ReadFiltered returns entries at or above the given minimum level,
// optionally restricted to a single module. An empty or unknown level
// string disables the level filter; an empty module matches all modules.
func (rb *RingBuffer) ReadFiltered(level, module string) []LogEntry {
	entries := rb.ReadAll()

	minLevel, filterLevel := parseLevel(level)
	if !filterLevel && module == "" {
		return entries
	}

	filtered := make([]LogEntry, 0, len(entries))
	for _, entry := range entries {
		if module != "" && entry.Module != module {
			continue
		}
		if filterLevel {
			entryLevel, ok := parseLevel(entry.Level)
			if !ok || entryLevel < minLevel {
				continue
			}
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

// Count reports how many entries the ring holds.
func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}
