package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/tyrius02/next-gen-vision/internal/api/models"
	"github.com/tyrius02/next-gen-vision/internal/devices"
	"github.com/tyrius02/next-gen-vision/internal/logging"
	"github.com/tyrius02/next-gen-vision/internal/metrics/exporters"
	"github.com/tyrius02/next-gen-vision/internal/updater"
	"github.com/tyrius02/next-gen-vision/pkg/hotplug"
)

// stubScanner serves canned snapshots keyed by device path.
type stubScanner struct {
	snaps map[string]*devices.Snapshot
}

func (s *stubScanner) Paths() ([]string, error) {
	paths := make([]string, 0, len(s.snaps))
	for path := range s.snaps {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *stubScanner) Probe(path string) (*devices.Snapshot, error) {
	snap, ok := s.snaps[path]
	if !ok {
		return nil, fmt.Errorf("no such device: %s", path)
	}
	out := *snap
	out.ScannedAt = time.Now()
	return &out, nil
}

func (s *stubScanner) Events(ctx context.Context) (<-chan hotplug.Event, error) {
	ch := make(chan hotplug.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func webcamSnapshot() *devices.Snapshot {
	return &devices.Snapshot{
		ID:         "usb-0000:00:14.0-3",
		Path:       "/dev/video0",
		Name:       "Test Webcam",
		Driver:     "uvcvideo",
		BusInfo:    "usb-0000:00:14.0-3",
		Version:    "6.8.4",
		Caps:       0x84a00001,
		DeviceCaps: 0x04200001,
		CapNames:   []string{"VIDEO_CAPTURE", "STREAMING"},
		Formats: []devices.Format{
			{
				BufType:     "VIDEO_CAPTURE",
				PixelFormat: "MJPG",
				Description: "Motion-JPEG",
				Compressed:  true,
				Sizes: []devices.FrameSize{
					{
						Width:  1920,
						Height: 1080,
						Rates: []devices.FrameRate{
							{Interval: devices.Fraction{Numerator: 1, Denominator: 30}, FPS: 30},
						},
					},
				},
			},
		},
	}
}

func hdmiSnapshot() *devices.Snapshot {
	return &devices.Snapshot{
		ID:         "platform-fe880000.hdmi-video-index0",
		Path:       "/dev/video1",
		Name:       "HDMI Capture",
		Driver:     "hdmirx",
		BusInfo:    "platform:fe880000.hdmi",
		Version:    "6.8.4",
		Caps:       0x84200001,
		DeviceCaps: 0x04200001,
		CapNames:   []string{"VIDEO_CAPTURE", "STREAMING"},
		Formats: []devices.Format{
			{
				BufType:     "VIDEO_CAPTURE",
				PixelFormat: "NV12",
				Description: "Y/UV 4:2:0",
				Sizes: []devices.FrameSize{
					{
						Range: &devices.SizeRange{
							MinWidth: 320, MaxWidth: 3840, StepWidth: 2,
							MinHeight: 240, MaxHeight: 2160, StepHeight: 2,
						},
					},
				},
			},
		},
	}
}

func newTestRegistry(t *testing.T, scanner *stubScanner) *devices.Registry {
	t.Helper()
	reg := devices.NewRegistry(&devices.Options{Scanner: scanner})
	if _, err := reg.Scan(context.Background(), devices.TriggerInitial); err != nil {
		t.Fatalf("Initial scan failed: %v", err)
	}
	return reg
}

func newTestServer(t *testing.T, opts *Options) *httptest.Server {
	t.Helper()
	server := NewServer(opts)
	ts := httptest.NewServer(server.GetMux())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, method, url string, auth bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if auth {
		req.SetBasicAuth("admin", "secret")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return out
}

func TestHealthEndpointSkipsAuth(t *testing.T) {
	ts := newTestServer(t, &Options{AuthUsername: "admin", AuthPassword: "secret"})

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/health", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	health := decodeBody[models.HealthData](t, resp)
	if health.Status != "ok" {
		t.Errorf("Expected status 'ok', got %q", health.Status)
	}
}

func TestVersionEndpointSkipsAuth(t *testing.T) {
	ts := newTestServer(t, &Options{AuthUsername: "admin", AuthPassword: "secret"})

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/version", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	info := decodeBody[models.VersionData](t, resp)
	if info.Version == "" {
		t.Error("Expected a version string")
	}
	if info.GoVersion == "" {
		t.Error("Expected a Go version string")
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Expected platform in os/arch form, got %q", info.Platform)
	}
}

func TestBasicAuth(t *testing.T) {
	scanner := &stubScanner{snaps: map[string]*devices.Snapshot{"/dev/video0": webcamSnapshot()}}
	ts := newTestServer(t, &Options{
		Registry:     newTestRegistry(t, scanner),
		AuthUsername: "admin",
		AuthPassword: "secret",
	})

	t.Run("missing credentials", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.URL+"/api/devices", false)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("Expected status 401, got %d", resp.StatusCode)
		}
		if !strings.Contains(resp.Header.Get("WWW-Authenticate"), "Basic") {
			t.Errorf("Expected WWW-Authenticate challenge, got %q", resp.Header.Get("WWW-Authenticate"))
		}
	})

	t.Run("wrong credentials", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/devices", nil)
		req.SetBasicAuth("admin", "wrong")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("Expected status 401, got %d", resp.StatusCode)
		}
	})

	t.Run("header credentials", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.URL+"/api/devices", true)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
	})

	t.Run("query credentials", func(t *testing.T) {
		// SSE clients cannot set headers, credentials ride in the auth param
		creds := "YWRtaW46c2VjcmV0" // admin:secret
		resp := doRequest(t, http.MethodGet, ts.URL+"/api/devices?auth="+creds, false)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
	})
}

func TestListDevices(t *testing.T) {
	scanner := &stubScanner{snaps: map[string]*devices.Snapshot{
		"/dev/video0": webcamSnapshot(),
		"/dev/video1": hdmiSnapshot(),
	}}
	ts := newTestServer(t, &Options{Registry: newTestRegistry(t, scanner)})

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/devices", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	list := decodeBody[models.DeviceListData](t, resp)
	if list.Count != 2 {
		t.Fatalf("Expected 2 devices, got %d", list.Count)
	}
	if list.Devices[0].Path != "/dev/video0" || list.Devices[1].Path != "/dev/video1" {
		t.Errorf("Expected devices sorted by path, got %q then %q",
			list.Devices[0].Path, list.Devices[1].Path)
	}

	cam := list.Devices[0]
	if cam.ID != "usb-0000:00:14.0-3" {
		t.Errorf("Expected stable ID, got %q", cam.ID)
	}
	if cam.Driver != "uvcvideo" {
		t.Errorf("Expected driver uvcvideo, got %q", cam.Driver)
	}
	if len(cam.Capabilities) != 2 {
		t.Errorf("Expected 2 capability names, got %v", cam.Capabilities)
	}
	if cam.Formats != 1 {
		t.Errorf("Expected 1 format, got %d", cam.Formats)
	}
}

func TestGetDeviceDetail(t *testing.T) {
	scanner := &stubScanner{snaps: map[string]*devices.Snapshot{
		"/dev/video0": webcamSnapshot(),
		"/dev/video1": hdmiSnapshot(),
	}}
	ts := newTestServer(t, &Options{Registry: newTestRegistry(t, scanner)})

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/devices/usb-0000:00:14.0-3", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	detail := decodeBody[models.DeviceDetailData](t, resp)
	if detail.KernelVersion != "6.8.4" {
		t.Errorf("Expected kernel version 6.8.4, got %q", detail.KernelVersion)
	}
	if len(detail.Formats) != 1 {
		t.Fatalf("Expected 1 format, got %d", len(detail.Formats))
	}

	format := detail.Formats[0]
	if format.PixelFormat != "MJPG" || !format.Compressed {
		t.Errorf("Expected compressed MJPG, got %+v", format)
	}
	if len(format.Sizes) != 1 || format.Sizes[0].Width != 1920 {
		t.Fatalf("Expected one 1920-wide size, got %+v", format.Sizes)
	}
	if len(format.Sizes[0].Rates) != 1 || format.Sizes[0].Rates[0].FPS != 30 {
		t.Errorf("Expected one 30 fps rate, got %+v", format.Sizes[0].Rates)
	}
	if format.Sizes[0].Rates[0].Interval.Denominator != 30 {
		t.Errorf("Expected exact 1/30 interval, got %+v", format.Sizes[0].Rates[0].Interval)
	}
}

func TestGetDeviceStepwiseDetail(t *testing.T) {
	scanner := &stubScanner{snaps: map[string]*devices.Snapshot{"/dev/video1": hdmiSnapshot()}}
	ts := newTestServer(t, &Options{Registry: newTestRegistry(t, scanner)})

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/devices/platform-fe880000.hdmi-video-index0", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	detail := decodeBody[models.DeviceDetailData](t, resp)
	size := detail.Formats[0].Sizes[0]
	if size.Range == nil {
		t.Fatal("Expected a stepwise size range")
	}
	if size.Range.MaxWidth != 3840 || size.Range.StepHeight != 2 {
		t.Errorf("Unexpected size range: %+v", size.Range)
	}
	if size.Width != 0 || size.Height != 0 {
		t.Errorf("Stepwise sizes must not carry discrete dimensions, got %dx%d", size.Width, size.Height)
	}
	if len(size.Rates) != 0 {
		t.Errorf("Expected no rates for a stepwise size, got %+v", size.Rates)
	}
}

func TestGetDeviceNotFound(t *testing.T) {
	scanner := &stubScanner{snaps: map[string]*devices.Snapshot{"/dev/video0": webcamSnapshot()}}
	ts := newTestServer(t, &Options{Registry: newTestRegistry(t, scanner)})

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/devices/no-such-device", false)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestRescanDevices(t *testing.T) {
	scanner := &stubScanner{snaps: map[string]*devices.Snapshot{"/dev/video0": webcamSnapshot()}}
	ts := newTestServer(t, &Options{Registry: newTestRegistry(t, scanner)})

	// A second device appears between scans
	scanner.snaps["/dev/video1"] = hdmiSnapshot()

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/devices/rescan", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	result := decodeBody[models.RescanData](t, resp)
	if result.Added != 1 || result.Removed != 0 {
		t.Errorf("Expected 1 added and 0 removed, got %d and %d", result.Added, result.Removed)
	}
	if result.Count != 2 || len(result.Devices) != 2 {
		t.Errorf("Expected 2 devices after rescan, got count %d with %d devices",
			result.Count, len(result.Devices))
	}
}

func TestLogsEndpoint(t *testing.T) {
	logging.Initialize(logging.Config{Level: "debug"})

	// The ring buffer is shared across tests, so filter on module names
	// only this test writes
	logging.GetLogger("logtest-a").Info("first entry")
	logging.GetLogger("logtest-a").Error("second entry", "code", 7)
	logging.GetLogger("logtest-b").Warn("other module")

	ts := newTestServer(t, &Options{})

	t.Run("module filter", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.URL+"/api/logs?module=logtest-a", false)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		logs := decodeBody[models.LogsData](t, resp)
		if logs.Count != 2 {
			t.Fatalf("Expected 2 entries for logtest-a, got %d", logs.Count)
		}
		if logs.Entries[0].Message != "first entry" {
			t.Errorf("Expected oldest entry first, got %q", logs.Entries[0].Message)
		}
		if logs.Entries[1].Attributes["code"] == nil {
			t.Errorf("Expected structured attributes, got %v", logs.Entries[1].Attributes)
		}
	})

	t.Run("level filter", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.URL+"/api/logs?module=logtest-a&level=error", false)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		logs := decodeBody[models.LogsData](t, resp)
		if logs.Count != 1 || logs.Entries[0].Level != "error" {
			t.Fatalf("Expected only the error entry, got %+v", logs.Entries)
		}
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.URL+"/api/logs?level=loud", false)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("Expected status 422, got %d", resp.StatusCode)
		}
	})
}

func TestUpdateEndpointsDisabledService(t *testing.T) {
	// Test binaries run as version "dev", so the service reports disabled
	svc, err := updater.NewService(&updater.Options{Repository: "tyrius02/next-gen-vision"})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if svc.IsEnabled() {
		t.Fatal("Expected a disabled update service in tests")
	}

	ts := newTestServer(t, &Options{UpdateService: svc})

	t.Run("status reports disabled", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.URL+"/api/update", false)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		data := decodeBody[models.UpdateData](t, resp)
		if data.Enabled {
			t.Error("Expected enabled=false")
		}
		if data.DisabledReason == "" {
			t.Error("Expected a disabled reason")
		}
	})

	t.Run("apply rejected", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, ts.URL+"/api/update", false)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("Expected status 503, got %d", resp.StatusCode)
		}
	})
}

func TestMetricsEndpointSkipsAuth(t *testing.T) {
	scanner := &stubScanner{snaps: map[string]*devices.Snapshot{"/dev/video0": webcamSnapshot()}}
	ts := newTestServer(t, &Options{
		Registry:          newTestRegistry(t, scanner),
		AuthUsername:      "admin",
		AuthPassword:      "secret",
		PrometheusHandler: exporters.HTTPHandler(),
	})

	resp := doRequest(t, http.MethodGet, ts.URL+"/metrics", false)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read metrics body: %v", err)
	}
	if !strings.Contains(string(body), "vision_scans_total") {
		t.Error("Expected vision_scans_total in metrics output")
	}
}

func TestRootRedirectsToDocs(t *testing.T) {
	ts := newTestServer(t, &Options{})

	client := &http.Client{
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("Expected status 307, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/docs" {
		t.Errorf("Expected redirect to /docs, got %q", loc)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, &Options{AuthUsername: "admin", AuthPassword: "secret"})

	resp := doRequest(t, http.MethodOptions, ts.URL+"/api/devices", false)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected permissive CORS origin, got %q", resp.Header.Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(resp.Header.Get("Access-Control-Allow-Methods"), "POST") {
		t.Errorf("Expected POST in allowed methods, got %q", resp.Header.Get("Access-Control-Allow-Methods"))
	}
}
