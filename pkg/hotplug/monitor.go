//go:build linux

package hotplug

import (
	"context"
	"errors"
	"sync"
	"syscall"
)

// NETLINK_KOBJECT_UEVENT from <linux/netlink.h>.
const netlinkKobjectUEvent = 15

// Monitor receives kernel uevents over a netlink socket.
type Monitor struct {
	fd        int
	filters   map[string]struct{}
	filtersMu sync.RWMutex
}

// NewMonitor opens the uevent socket. Any subsystems given become
// filters: only events from matching subsystems are delivered. With no
// subsystems, every event passes through.
func NewMonitor(subsystems ...string) (*Monitor, error) {
	fd, err := syscall.Socket(syscall.AF_NETLINK, syscall.SOCK_DGRAM|syscall.SOCK_CLOEXEC, netlinkKobjectUEvent)
	if err != nil {
		return nil, err
	}

	// Group 1 is the kernel's broadcast group; group 2 carries udev's
	// processed copies, which we do not want twice.
	addr := &syscall.SockaddrNetlink{
		Family: syscall.AF_NETLINK,
		Groups: 1,
	}
	if err := syscall.Bind(fd, addr); err != nil {
		syscall.Close(fd)
		return nil, err
	}

	m := &Monitor{
		fd:      fd,
		filters: make(map[string]struct{}),
	}
	for _, subsystem := range subsystems {
		m.filters[subsystem] = struct{}{}
	}
	return m, nil
}

// AddSubsystemFilter narrows delivery to the given subsystem, in
// addition to any filters already present. Safe to call while Run is
// receiving.
func (m *Monitor) AddSubsystemFilter(subsystem string) {
	m.filtersMu.Lock()
	m.filters[subsystem] = struct{}{}
	m.filtersMu.Unlock()
}

// Close releases the netlink socket.
func (m *Monitor) Close() error {
	return syscall.Close(m.fd)
}

// Run receives uevents and delivers matching ones to events until ctx
// ends or a socket error occurs. The events channel is closed on
// return.
func (m *Monitor) Run(ctx context.Context, events chan<- Event) error {
	defer close(events)

	// Read timeout so the loop notices context cancellation.
	tv := syscall.Timeval{Sec: 1}
	if err := syscall.SetsockoptTimeval(m.fd, syscall.SOL_SOCKET, syscall.SO_RCVTIMEO, &tv); err != nil {
		return err
	}

	buf := make([]byte, 8192)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, _, err := syscall.Recvfrom(m.fd, buf, 0)
		switch {
		case errors.Is(err, syscall.EAGAIN), errors.Is(err, syscall.EWOULDBLOCK):
			continue // read timeout, re-check the context
		case errors.Is(err, syscall.EINTR):
			continue
		case err != nil:
			return err
		case n == 0:
			continue
		}

		event := ParseUEvent(buf[:n])
		if event == nil || !m.matches(event.Subsystem) {
			continue
		}

		select {
		case events <- *event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// matches reports whether an event from the given subsystem passes the
// configured filters.
func (m *Monitor) matches(subsystem string) bool {
	m.filtersMu.RLock()
	defer m.filtersMu.RUnlock()
	if len(m.filters) == 0 {
		return true
	}
	_, ok := m.filters[subsystem]
	return ok
}
