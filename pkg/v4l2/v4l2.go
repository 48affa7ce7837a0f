//go:build linux

// Package v4l2 provides pure Go bindings to the Video4Linux2 (V4L2)
// capability discovery API: device identity, image formats, frame
// sizes, and frame intervals.
//
// Everything goes through raw ioctls, no cgo involved, so the package
// cross-compiles to any Linux architecture (amd64, arm64, arm).
//
// # Device Discovery
//
// Use FindDevices to discover the video capture nodes on a system:
//
//	paths, err := v4l2.FindDevices(v4l2.DefaultDeviceDir, v4l2.DefaultDevicePrefix)
//	for _, path := range paths {
//	    fmt.Println(path)
//	}
//
// # Capability Snapshots
//
// Query takes a complete snapshot of one device node in a single call:
//
//	info, err := v4l2.Query("/dev/video0")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s (%s)\n", info.Card, info.Driver)
//	for _, f := range info.Formats {
//	    fmt.Printf("  %s: %s\n", f.PixelFormat, f.Description)
//	}
//
// # Fine-Grained Queries
//
// Open a handle to issue individual requests. A handle serves one
// request at a time; open separate handles for concurrent probing of
// distinct nodes:
//
//	dev, err := v4l2.Open("/dev/video0")
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	formats, _ := dev.Formats(v4l2.BufTypeVideoCapture)
//	for _, f := range formats {
//	    sizes, _ := dev.FrameSizes(f.PixelFormat)
//	    for _, s := range sizes {
//	        if d, ok := s.(v4l2.DiscreteFrameSize); ok {
//	            intervals, _ := dev.FrameIntervals(f.PixelFormat, d.Width, d.Height)
//	            _ = intervals
//	        }
//	    }
//	}
//
// Enumerations terminate on EINVAL from the driver; every other errno
// is reported as an error. Frame intervals are only defined for
// discrete frame sizes, so stepwise and continuous size ranges are
// never probed for intervals.
package v4l2
