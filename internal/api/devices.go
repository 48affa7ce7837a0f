package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/tyrius02/next-gen-vision/internal/api/models"
	"github.com/tyrius02/next-gen-vision/internal/devices"
	"github.com/tyrius02/next-gen-vision/internal/metrics"
)

// DeviceIDInput captures the device_id path parameter.
type DeviceIDInput struct {
	DeviceID string `path:"device_id" example:"usb-0000:00:14.0-3" doc:"Stable device identifier"`
}

// registerDeviceRoutes registers the device discovery endpoints.
func (s *Server) registerDeviceRoutes() {
	reg := s.options.Registry
	if reg == nil {
		return
	}

	// List current devices
	huma.Register(s.api, huma.Operation{
		OperationID: "list-devices",
		Method:      http.MethodGet,
		Path:        "/api/devices",
		Summary:     "List Devices",
		Description: "List the video capture devices currently present with capability summaries",
		Tags:        []string{"devices"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, _ *struct{}) (*models.DeviceListResponse, error) {
		summaries := models.NewDeviceSummaries(reg.List())
		return &models.DeviceListResponse{
			Body: models.DeviceListData{
				Devices: summaries,
				Count:   len(summaries),
			},
		}, nil
	})

	// Full capability snapshot of one device
	huma.Register(s.api, huma.Operation{
		OperationID: "get-device",
		Method:      http.MethodGet,
		Path:        "/api/devices/{device_id}",
		Summary:     "Get Device",
		Description: "Get the full capability snapshot of one device: formats, frame sizes, frame rates, current format and stream parameters",
		Tags:        []string{"devices"},
		Errors:      []int{401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *DeviceIDInput) (*models.DeviceDetailResponse, error) {
		snap, ok := reg.Get(input.DeviceID)
		if !ok {
			metrics.RecordSnapshotRequest("not_found")
			return nil, huma.Error404NotFound(fmt.Sprintf("Device %s not found", input.DeviceID))
		}
		metrics.RecordSnapshotRequest("ok")
		return &models.DeviceDetailResponse{
			Body: models.NewDeviceDetail(snap),
		}, nil
	})

	// Force a rescan
	huma.Register(s.api, huma.Operation{
		OperationID: "rescan-devices",
		Method:      http.MethodPost,
		Path:        "/api/devices/rescan",
		Summary:     "Rescan Devices",
		Description: "Probe all device nodes again and return the refreshed device list",
		Tags:        []string{"devices"},
		Errors:      []int{401, 500},
		Security:    withAuth(),
	}, func(ctx context.Context, _ *struct{}) (*models.RescanResponse, error) {
		result, err := reg.Scan(ctx, devices.TriggerManual)
		if err != nil {
			return nil, huma.Error500InternalServerError("Rescan failed", err)
		}

		summaries := models.NewDeviceSummaries(reg.List())
		return &models.RescanResponse{
			Body: models.RescanData{
				Devices:    summaries,
				Count:      len(summaries),
				Added:      result.Added,
				Removed:    result.Removed,
				Errors:     result.Errors,
				DurationMS: float64(result.Duration) / float64(time.Millisecond),
			},
		}, nil
	})
}
