// Package hotplug delivers kernel device add/remove notifications.
//
// The kernel broadcasts a kobject uevent datagram on a netlink socket
// whenever a device appears, disappears, or changes state. Monitor
// subscribes to that broadcast group directly, without cgo or a libudev
// dependency. Datagram parsing is portable; the netlink listener itself
// is Linux-only.
package hotplug

import (
	"bytes"
	"strings"
)

// Uevent actions as the kernel spells them.
const (
	ActionAdd     = "add"
	ActionRemove  = "remove"
	ActionChange  = "change"
	ActionMove    = "move"
	ActionBind    = "bind"
	ActionUnbind  = "unbind"
	ActionOnline  = "online"
	ActionOffline = "offline"
)

// Subsystem names worth filtering on.
const (
	SubsystemVideo4Linux = "video4linux"
	SubsystemUSB         = "usb"
	SubsystemSound       = "sound"
	SubsystemBlock       = "block"
	SubsystemNet         = "net"
)

// Event is one decoded kernel uevent.
type Event struct {
	Action    string            // add, remove, change, bind, ...
	KObj      string            // kernel object the event refers to
	Subsystem string            // e.g. video4linux, usb, sound
	DevType   string            // DEVTYPE property when present
	DevName   string            // device node relative to /dev, e.g. video0
	DevPath   string            // sysfs path, e.g. /devices/platform/...
	Env       map[string]string // every KEY=VALUE property of the datagram
}

// DevNode returns the absolute /dev path of the event's device node, or
// "" when the event carries no DEVNAME.
func (e Event) DevNode() string {
	if e.DevName == "" {
		return ""
	}
	if strings.HasPrefix(e.DevName, "/") {
		return e.DevName
	}
	return "/dev/" + e.DevName
}

// ParseUEvent decodes a kernel uevent datagram.
//
// The wire format is "ACTION@KOBJ" followed by NUL-separated KEY=VALUE
// properties. Datagrams relayed by udev carry a binary libudev prefix
// before the same payload; the prefix is stripped. Returns nil when the
// data has no valid ACTION@KOBJ header.
func ParseUEvent(data []byte) *Event {
	data = stripUdevPrefix(data)

	header, props, _ := bytes.Cut(data, []byte{0})
	action, kobj, ok := strings.Cut(string(header), "@")
	if !ok || action == "" {
		return nil
	}

	event := &Event{
		Action: action,
		KObj:   kobj,
		Env:    make(map[string]string),
	}

	for len(props) > 0 {
		var prop []byte
		prop, props, _ = bytes.Cut(props, []byte{0})
		if len(prop) == 0 {
			continue
		}

		// Values may themselves contain '='; only the first one splits.
		key, value, ok := strings.Cut(string(prop), "=")
		if !ok || key == "" {
			continue
		}
		event.Env[key] = value

		switch key {
		case "SUBSYSTEM":
			event.Subsystem = value
		case "DEVTYPE":
			event.DevType = value
		case "DEVNAME":
			event.DevName = value
		case "DEVPATH":
			event.DevPath = value
		}
	}

	return event
}

// stripUdevPrefix drops the binary header udev prepends when relaying
// uevents. The payload resumes at the first NUL boundary followed by
// something that looks like an ACTION@KOBJ line.
func stripUdevPrefix(data []byte) []byte {
	if !bytes.HasPrefix(data, []byte("libudev")) {
		return data
	}
	for i := 0; i < len(data)-1; i++ {
		if data[i] != 0 {
			continue
		}
		rest := data[i+1:]
		if at := bytes.IndexByte(rest, '@'); at > 0 && at < 20 {
			return rest
		}
	}
	return data
}
